package app

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/backend"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/store"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

const (
	// MaxDocuments is the client-side cap, independent of any backend cap.
	MaxDocuments = 3
	// MaxUploadBytes is the upload size limit.
	MaxUploadBytes = 10 << 20
)

const (
	msgCredentialsRequired = "Email and password are required"
	msgDocumentCap         = "You can only upload up to 3 documents. Delete existing documents to upload new ones."
	msgFileType            = "Please upload a PDF, DOCX, or TXT file."
	msgFileSize            = "File size must be less than 10MB."
	msgURLRequired         = "URL is required"
	msgQuestionRequired    = "Question is required"
)

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

var contentTypeByExt = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Config holds dependencies for the core application.
type Config struct {
	BackendURL string
	Store      store.Store
	Client     *backend.Client
	Logger     *slog.Logger
}

// App wires the local store and the backend client together: session
// lifecycle, the document registry projection, and the local chat log.
type App struct {
	store  store.Store
	client *backend.Client
	logger *slog.Logger

	// documents seen on the last successful list; feeds the upload cap
	docCount int
}

// New constructs the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("store required")
	}
	client := cfg.Client
	if client == nil {
		if cfg.BackendURL == "" {
			return nil, errors.New("backend URL required")
		}
		client = backend.NewClient(cfg.BackendURL)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{store: cfg.Store, client: client, logger: logger}, nil
}

// Login exchanges credentials for a session and persists it. Stored state is
// untouched on any failure.
func (a *App) Login(email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, ValidationError(msgCredentialsRequired)
	}
	res, err := a.client.Login(email, password)
	if err != nil {
		return domain.Session{}, err
	}
	sess := domain.Session{Token: res.Token, UserID: res.UserID, Email: email}
	if err := a.store.SaveSession(sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Signup registers an account. The backend issues no token on signup, so
// only the identity id is stored; the user logs in separately.
func (a *App) Signup(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ValidationError(msgCredentialsRequired)
	}
	res, err := a.client.Signup(email, password)
	if err != nil {
		return "", err
	}
	if err := a.store.SaveUserID(res.UserID); err != nil {
		return "", err
	}
	return res.UserID, nil
}

// RequestOTP asks the backend to send a passcode. Single round trip, no
// retry.
func (a *App) RequestOTP(email string) (string, error) {
	return a.client.RequestOTP(email)
}

// VerifyOTP trades a passcode for a session, persisting it like Login.
func (a *App) VerifyOTP(email, otp string) (domain.Session, error) {
	res, err := a.client.VerifyOTP(email, otp)
	if err != nil {
		return domain.Session{}, err
	}
	sess := domain.Session{Token: res.Token, UserID: res.UserID, Email: email}
	if err := a.store.SaveSession(sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// ResetPassword sets a new password using a passcode.
func (a *App) ResetPassword(email, otp, newPassword string) (string, error) {
	return a.client.ResetPassword(email, otp, newPassword)
}

// Logout clears the token. Identity id, chat history and preferences stay.
func (a *App) Logout() error {
	return a.store.ClearToken()
}

// IsAuthenticated reports whether a token is stored. No network or expiry
// check; an expired token is discovered when the backend rejects a request.
func (a *App) IsAuthenticated() bool {
	sess, ok, err := a.store.GetSession()
	if err != nil {
		a.logger.Warn("read session failed", "error", err)
		return false
	}
	return ok && sess.Authenticated()
}

// CurrentUser returns the stored identity if a token is present.
func (a *App) CurrentUser() (domain.Session, bool) {
	sess, ok, err := a.store.GetSession()
	if err != nil || !ok || !sess.Authenticated() {
		return domain.Session{}, false
	}
	return sess, true
}

// ListDocuments fetches the registry projection, newest first. It never
// fails: any error is logged and yields an empty slice, so the dashboard
// always renders.
func (a *App) ListDocuments() []domain.Document {
	sess, _, _ := a.store.GetSession()
	docs, err := a.client.ListDocuments(sess.Token)
	if err != nil {
		a.logger.Warn("list documents failed", "error", err)
		return []domain.Document{}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return parseUploadedAt(docs[i].UploadedAt).After(parseUploadedAt(docs[j].UploadedAt))
	})
	a.docCount = len(docs)
	return docs
}

// UploadDocument validates the cap, type and size before any network I/O,
// then streams the file and maps the response into a Document.
func (a *App) UploadDocument(file domain.FileUpload) (domain.Document, error) {
	if a.docCount >= MaxDocuments {
		return domain.Document{}, ValidationError(msgDocumentCap)
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = contentTypeByExt[ext]
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return domain.Document{}, ValidationError(msgFileType)
	}
	if file.Size > MaxUploadBytes {
		return domain.Document{}, ValidationError(msgFileSize)
	}

	sess, _, _ := a.store.GetSession()
	res, err := a.client.UploadDocument(sess.Token, file.Name, file.Content)
	if err != nil {
		return domain.Document{}, err
	}
	a.docCount++
	return domain.Document{
		ID:         res.DocumentID,
		FileName:   strings.TrimSuffix(file.Name, filepath.Ext(file.Name)),
		FileType:   strings.TrimPrefix(ext, "."),
		UploadedAt: res.UploadedAt,
		Size:       file.Size,
	}, nil
}

// UploadLink submits a URL for backend ingestion. The only client-side
// check is non-emptiness.
func (a *App) UploadLink(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ValidationError(msgURLRequired)
	}
	sess, _, _ := a.store.GetSession()
	return a.client.UploadLink(sess.Token, rawURL)
}

// DeleteDocument removes a document best-effort: a remote failure is logged
// and swallowed, and the local chat log is dropped either way. The registry
// is re-queried by the next dashboard visit, so staleness self-heals.
func (a *App) DeleteDocument(documentID string) {
	sess, _, _ := a.store.GetSession()
	if err := a.client.DeleteDocument(sess.Token, documentID); err != nil {
		a.logger.Warn("delete document failed", "documentId", documentID, "error", err)
	}
	if err := a.store.DeleteMessages(documentID); err != nil {
		a.logger.Warn("delete chat history failed", "documentId", documentID, "error", err)
	}
	if a.docCount > 0 {
		a.docCount--
	}
}

// AskQuestion sends a question to the answering endpoint and, on success,
// appends the exchange to the local chat log.
func (a *App) AskQuestion(documentID, question string) (domain.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ChatMessage{}, ValidationError(msgQuestionRequired)
	}
	sess, _, _ := a.store.GetSession()
	answer, err := a.client.Ask(sess.Token, documentID, question)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return a.AppendMessage(documentID, question, answer)
}

// AppendMessage records a question/answer pair with a fresh unique id. This
// is the sole mutation path for the chat log.
func (a *App) AppendMessage(documentID, question, answer string) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Message:    question,
		Response:   answer,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := a.store.AppendMessage(msg); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

// History returns the local chat log for a document in insertion order. It
// never fails; a read error is logged and yields an empty slice.
func (a *App) History(documentID string) []domain.ChatMessage {
	msgs, err := a.store.ListMessages(documentID)
	if err != nil {
		a.logger.Warn("read chat history failed", "documentId", documentID, "error", err)
		return []domain.ChatMessage{}
	}
	return msgs
}

// SetTheme persists the UI theme preference.
func (a *App) SetTheme(theme string) error {
	return a.store.SetPreference(store.PrefTheme, theme)
}

// Theme returns the stored UI theme, defaulting to light.
func (a *App) Theme() string {
	theme, ok, err := a.store.GetPreference(store.PrefTheme)
	if err != nil || !ok {
		return "light"
	}
	return theme
}

// parseUploadedAt handles both zoned and naive backend timestamps. Unparsable
// values sort last.
func parseUploadedAt(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
