package ui

import (
	"errors"
	"testing"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

type fakeAsker struct {
	answer  string
	err     error
	asks    int
	history []domain.ChatMessage
}

func (f *fakeAsker) AskQuestion(documentID, question string) (domain.ChatMessage, error) {
	f.asks++
	if f.err != nil {
		return domain.ChatMessage{}, f.err
	}
	msg := domain.ChatMessage{ID: "m1", DocumentID: documentID, Message: question, Response: f.answer}
	f.history = append(f.history, msg)
	return msg, nil
}

func (f *fakeAsker) History(documentID string) []domain.ChatMessage {
	return f.history
}

func TestChatScreenSubmitRoundTrip(t *testing.T) {
	asker := &fakeAsker{answer: "an answer"}
	screen := NewChatScreen(asker, "doc-1")
	if screen.Sending() {
		t.Fatal("new screen is Sending")
	}
	msg, err := screen.Submit("a question")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg.Response != "an answer" {
		t.Errorf("response = %q", msg.Response)
	}
	if screen.Sending() {
		t.Error("screen stuck in Sending after response")
	}
	if len(screen.History()) != 1 {
		t.Errorf("history = %v", screen.History())
	}
}

func TestChatScreenRejectsSubmitWhileSending(t *testing.T) {
	asker := &fakeAsker{answer: "a"}
	screen := NewChatScreen(asker, "doc-1")
	screen.sending = true
	if _, err := screen.Submit("q"); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if asker.asks != 0 {
		t.Errorf("asker called %d times while busy", asker.asks)
	}
}

func TestChatScreenResetsAfterError(t *testing.T) {
	asker := &fakeAsker{err: errors.New("backend down")}
	screen := NewChatScreen(asker, "doc-1")
	if _, err := screen.Submit("q"); err == nil {
		t.Fatal("submit succeeded against failing asker")
	}
	if screen.Sending() {
		t.Error("screen stuck in Sending after error")
	}
	// next submission goes through again
	asker.err = nil
	if _, err := screen.Submit("q2"); err != nil {
		t.Errorf("submit after reset: %v", err)
	}
}

func TestDashboardStateDiscardsStaleLoads(t *testing.T) {
	state := &dashboardState{}
	stale := state.beginLoad()
	fresh := state.beginLoad()

	current := []domain.Document{{ID: "2", FileName: "fresh"}}
	if !state.apply(fresh, current) {
		t.Fatal("current load was rejected")
	}
	if state.apply(stale, []domain.Document{{ID: "1", FileName: "stale"}}) {
		t.Fatal("stale load was applied")
	}
	docs := state.documents()
	if len(docs) != 1 || docs[0].FileName != "fresh" {
		t.Errorf("documents = %v", docs)
	}
}

func TestFilterDocumentsMatchesCaseInsensitive(t *testing.T) {
	docs := []domain.Document{
		{FileName: "Quarterly Report"},
		{FileName: "notes"},
	}
	if got := filterDocuments(docs, "report"); len(got) != 1 || got[0].FileName != "Quarterly Report" {
		t.Errorf("filtered = %v", got)
	}
	if got := filterDocuments(docs, ""); len(got) != 2 {
		t.Errorf("empty query filtered = %v", got)
	}
	if got := filterDocuments(docs, "zzz"); len(got) != 0 {
		t.Errorf("no-match filtered = %v", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512.00 Bytes"},
		{1024, "1.00 KB"},
		{10 << 20, "10.00 MB"},
	}
	for _, tc := range cases {
		if got := formatFileSize(tc.bytes); got != tc.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}
