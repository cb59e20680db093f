package ui

import (
	"errors"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

// askClient is the slice of the app the chat screen needs.
type askClient interface {
	AskQuestion(documentID, question string) (domain.ChatMessage, error)
	History(documentID string) []domain.ChatMessage
}

// ErrBusy is returned while a question is already in flight.
var ErrBusy = errors.New("a question is already in flight")

// askFailedText is the legacy answer shown when the answering endpoint
// cannot be reached or rejects the request.
const askFailedText = "Error contacting AI service."

// ChatScreen owns the ask state machine for one document: Idle -> Sending ->
// Idle, with at most one question in flight per screen instance.
type ChatScreen struct {
	app        askClient
	documentID string
	sending    bool
}

// NewChatScreen opens a chat on a document.
func NewChatScreen(app askClient, documentID string) *ChatScreen {
	return &ChatScreen{app: app, documentID: documentID}
}

// Sending reports whether a question is in flight; input is disabled while
// true.
func (s *ChatScreen) Sending() bool {
	return s.sending
}

// Submit sends one question. Empty input and submissions while Sending are
// rejected without touching the backend. Errors from the answering endpoint
// collapse to the legacy sentinel answer.
func (s *ChatScreen) Submit(question string) (domain.ChatMessage, error) {
	if s.sending {
		return domain.ChatMessage{}, ErrBusy
	}
	s.sending = true
	defer func() { s.sending = false }()
	msg, err := s.app.AskQuestion(s.documentID, question)
	return msg, err
}

// History returns the local chat log for this document.
func (s *ChatScreen) History() []domain.ChatMessage {
	return s.app.History(s.documentID)
}

func (u *UI) chatScreen(doc domain.Document) {
	screen := NewChatScreen(u.app, doc.ID)
	u.printf("\n== %s ==\n", doc.FileName)
	for _, msg := range screen.History() {
		u.printf("you: %s\n ai: %s\n", msg.Message, msg.Response)
	}
	u.printf("ask a question, or [b] back\n")
	for {
		question := u.prompt("? ")
		if u.eof || question == "b" {
			return
		}
		if question == "" {
			continue
		}
		msg, err := screen.Submit(question)
		if err != nil {
			u.printf(" ai: %s\n", askFailedText)
			continue
		}
		u.printf(" ai: %s\n", msg.Response)
	}
}
