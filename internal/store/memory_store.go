package store

import (
	"sync"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

// MemoryStore keeps client state in-process. Used by tests and as a
// throwaway store when no data path is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	session domain.Session
	chats   map[string][]domain.ChatMessage
	prefs   map[string]string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chats: make(map[string][]domain.ChatMessage),
		prefs: make(map[string]string),
	}
}

// SaveSession replaces the stored session.
func (m *MemoryStore) SaveSession(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

// GetSession returns the stored session, if any state has been recorded.
func (m *MemoryStore) GetSession() (domain.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == (domain.Session{}) {
		return domain.Session{}, false, nil
	}
	return m.session, true, nil
}

// SaveUserID records the identity id, leaving the token untouched.
func (m *MemoryStore) SaveUserID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.UserID = id
	return nil
}

// ClearToken removes the token but keeps identity, history and prefs.
func (m *MemoryStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Token = ""
	return nil
}

// AppendMessage records a message linked to a document.
func (m *MemoryStore) AppendMessage(msg domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[msg.DocumentID] = append(m.chats[msg.DocumentID], msg)
	return nil
}

// ListMessages returns the chat log for a document in insertion order.
func (m *MemoryStore) ListMessages(documentID string) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.chats[documentID]
	res := make([]domain.ChatMessage, len(msgs))
	copy(res, msgs)
	return res, nil
}

// DeleteMessages drops the chat log for a document.
func (m *MemoryStore) DeleteMessages(documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chats, documentID)
	return nil
}

// SetPreference stores a UI preference.
func (m *MemoryStore) SetPreference(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = value
	return nil
}

// GetPreference returns a UI preference.
func (m *MemoryStore) GetPreference(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.prefs[key]
	return v, ok, nil
}
