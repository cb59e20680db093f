package store

import "github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"

// Store persists client-local state: the single session, the per-document
// chat log, and UI preferences. It is the durable key-value storage shared
// by all components; implementations are injected so tests can run against
// the in-memory one.
type Store interface {
	// session
	SaveSession(domain.Session) error
	GetSession() (domain.Session, bool, error)
	// SaveUserID records an identity id without touching the token. Signup
	// returns an id but no token, so this path exists separately.
	SaveUserID(id string) error
	// ClearToken drops the token but keeps identity, history and prefs.
	ClearToken() error

	// chat history
	AppendMessage(domain.ChatMessage) error
	ListMessages(documentID string) ([]domain.ChatMessage, error)
	DeleteMessages(documentID string) error

	// preferences
	SetPreference(key, value string) error
	GetPreference(key string) (string, bool, error)
}

// PrefTheme is the preference key for the UI theme.
const PrefTheme = "theme"
