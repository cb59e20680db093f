package domain

import "io"

// Session is the single active session for this client. A non-empty Token
// means authenticated; the token is an opaque bearer credential and is never
// decoded or validated locally.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Document is the client projection of a backend-owned document. It is
// rebuilt from the backend on every dashboard visit and never cached.
type Document struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	UploadedAt string `json:"uploadedAt"`
	Size       int64  `json:"size"`
}

// ChatMessage is one question/answer pair in the local, per-document chat
// log. IDs are client-generated and the log is never pushed to the backend.
type ChatMessage struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
	Response   string `json:"response"`
	Timestamp  string `json:"timestamp"`
}

// FileUpload describes a file handed to the upload flow. ContentType may be
// empty, in which case it is derived from the file extension.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}
