package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

type documentItem struct {
	ID         json.Number `json:"id"`
	Filename   string      `json:"filename"`
	UploadedAt string      `json:"uploaded_at"`
	Content    string      `json:"content"`
}

// ListDocuments fetches the caller's documents. The backend does not report
// a size, so Size is derived from the extracted content length.
func (c *Client) ListDocuments(token string) ([]domain.Document, error) {
	var items []documentItem
	if err := c.doJSON(http.MethodGet, "/api/documents", token, nil, &items); err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(items))
	for _, item := range items {
		docs = append(docs, domain.Document{
			ID:         item.ID.String(),
			FileName:   item.Filename,
			UploadedAt: item.UploadedAt,
			Size:       int64(len(item.Content)),
		})
	}
	return docs, nil
}

// UploadResult is the normalized shape of an upload response.
type UploadResult struct {
	DocumentID string
	UploadedAt string
}

type uploadResponse struct {
	DocumentID      json.Number `json:"document_id"`
	ID              json.Number `json:"id"`
	UploadedAtSnake string      `json:"uploaded_at"`
	UploadedAtCamel string      `json:"uploadedAt"`
	CreatedAt       string      `json:"created_at"`
}

// normalize resolves the field-name variation between backend versions.
// Precedence: document_id over id; uploaded_at over uploadedAt over
// created_at over now.
func (r uploadResponse) normalize(now time.Time) UploadResult {
	id := r.DocumentID.String()
	if id == "" {
		id = r.ID.String()
	}
	uploadedAt := r.UploadedAtSnake
	if uploadedAt == "" {
		uploadedAt = r.UploadedAtCamel
	}
	if uploadedAt == "" {
		uploadedAt = r.CreatedAt
	}
	if uploadedAt == "" {
		uploadedAt = now.UTC().Format(time.RFC3339)
	}
	return UploadResult{DocumentID: id, UploadedAt: uploadedAt}
}

// UploadDocument streams a file to the backend as a multipart form.
func (c *Client) UploadDocument(token, filename string, r io.Reader) (UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, err
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/documents/upload", body)
	if err != nil {
		return UploadResult{}, err
	}
	addAuthHeader(req, token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return UploadResult{}, err
	}
	return resp.normalize(time.Now()), nil
}

// DeleteDocument removes a document. The response body is ignored.
func (c *Client) DeleteDocument(token, id string) error {
	path := fmt.Sprintf("/api/documents/%s", id)
	return c.doJSON(http.MethodDelete, path, token, nil, nil)
}

// UploadLink submits a URL for backend-side ingestion.
func (c *Client) UploadLink(token, url string) error {
	payload := map[string]string{"url": url}
	return c.doJSON(http.MethodPost, "/api/links/upload", token, payload, nil)
}
