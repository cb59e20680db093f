package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

// sessionRow is the fixed id of the single session record.
const sessionRow = 1

// GormStore implements Store on a local sqlite file, the client-side
// equivalent of origin-scoped browser storage.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the sqlite file and runs auto-migrations.
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&SessionModel{}, &MessageModel{}, &PreferenceModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveSession stores or replaces the single session row.
func (s *GormStore) SaveSession(sess domain.Session) error {
	model := SessionModel{ID: sessionRow, Token: sess.Token, UserID: sess.UserID, Email: sess.Email}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "user_id", "email"}),
	}).Create(&model).Error
}

// GetSession returns the stored session, if one has been recorded.
func (s *GormStore) GetSession() (domain.Session, bool, error) {
	var model SessionModel
	if err := s.db.First(&model, "id = ?", sessionRow).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Session{}, false, nil
		}
		return domain.Session{}, false, err
	}
	return domain.Session{Token: model.Token, UserID: model.UserID, Email: model.Email}, true, nil
}

// SaveUserID records the identity id without touching the token.
func (s *GormStore) SaveUserID(id string) error {
	sess, ok, err := s.GetSession()
	if err != nil {
		return err
	}
	if !ok {
		sess = domain.Session{}
	}
	sess.UserID = id
	return s.SaveSession(sess)
}

// ClearToken blanks the token on the session row, keeping everything else.
func (s *GormStore) ClearToken() error {
	return s.db.Model(&SessionModel{}).
		Where("id = ?", sessionRow).
		Update("token", "").Error
}

// AppendMessage records a chat message linked to a document.
func (s *GormStore) AppendMessage(msg domain.ChatMessage) error {
	model := MessageModel{
		ID:         msg.ID,
		DocumentID: msg.DocumentID,
		Message:    msg.Message,
		Response:   msg.Response,
		Timestamp:  msg.Timestamp,
		CreatedAt:  time.Now().UTC(),
	}
	return s.db.Create(&model).Error
}

// ListMessages returns a document's chat log in insertion order.
func (s *GormStore) ListMessages(documentID string) ([]domain.ChatMessage, error) {
	var models []MessageModel
	if err := s.db.Where("document_id = ?", documentID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		res = append(res, domain.ChatMessage{
			ID:         m.ID,
			DocumentID: m.DocumentID,
			Message:    m.Message,
			Response:   m.Response,
			Timestamp:  m.Timestamp,
		})
	}
	return res, nil
}

// DeleteMessages removes a document's chat log.
func (s *GormStore) DeleteMessages(documentID string) error {
	return s.db.Where("document_id = ?", documentID).Delete(&MessageModel{}).Error
}

// SetPreference stores or replaces a preference.
func (s *GormStore) SetPreference(key, value string) error {
	model := PreferenceModel{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model).Error
}

// GetPreference returns a preference value.
func (s *GormStore) GetPreference(key string) (string, bool, error) {
	var model PreferenceModel
	if err := s.db.First(&model, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}
