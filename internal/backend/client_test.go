package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("username"); got != "a@x.com" {
			t.Errorf("username = %q", got)
		}
		if got := r.PostFormValue("password"); got != "good" {
			t.Errorf("password = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok1", "user_id": 7})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Login("a@x.com", "good")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok1" {
		t.Errorf("token = %q, want tok1", res.Token)
	}
	if res.UserID != "7" {
		t.Errorf("user id = %q, want 7", res.UserID)
	}
}

func TestLoginRejectionSurfacesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login("a@x.com", "bad")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestSignupReturnsIDWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["username"] != "a@x.com" || body["email"] != "a@x.com" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 12})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Signup("a@x.com", "pw")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.UserID != "12" {
		t.Errorf("user id = %q, want 12", res.UserID)
	}
	if res.Token != "" {
		t.Errorf("token = %q, want empty", res.Token)
	}
}

func TestListDocumentsDerivesSizeFromContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
			t.Errorf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "filename": "notes.txt", "uploaded_at": "2024-03-01T10:00:00", "content": "hello"},
		})
	}))
	defer srv.Close()

	docs, err := NewClient(srv.URL).ListDocuments("tok1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len = %d", len(docs))
	}
	if docs[0].ID != "1" || docs[0].FileName != "notes.txt" || docs[0].Size != 5 {
		t.Errorf("doc = %+v", docs[0])
	}
}

func TestUploadDocumentStreamsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "%PDF" {
			t.Errorf("content = %q", data)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"document_id": 4, "uploaded_at": "2024-03-01T10:00:00"})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).UploadDocument("tok1", "report.pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.DocumentID != "4" || res.UploadedAt != "2024-03-01T10:00:00" {
		t.Errorf("result = %+v", res)
	}
}

func TestUploadResponseNormalizationPrecedence(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name           string
		resp           uploadResponse
		wantID         string
		wantUploadedAt string
	}{
		{
			name:           "document_id wins over id",
			resp:           uploadResponse{DocumentID: "9", ID: "2", UploadedAtSnake: "t1"},
			wantID:         "9",
			wantUploadedAt: "t1",
		},
		{
			name:           "id fallback",
			resp:           uploadResponse{ID: "2", UploadedAtCamel: "t2"},
			wantID:         "2",
			wantUploadedAt: "t2",
		},
		{
			name:           "created_at fallback",
			resp:           uploadResponse{ID: "2", CreatedAt: "t3"},
			wantID:         "2",
			wantUploadedAt: "t3",
		},
		{
			name:           "now fallback",
			resp:           uploadResponse{ID: "2"},
			wantID:         "2",
			wantUploadedAt: "2024-03-01T12:00:00Z",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.resp.normalize(now)
			if got.DocumentID != tc.wantID {
				t.Errorf("id = %q, want %q", got.DocumentID, tc.wantID)
			}
			if got.UploadedAt != tc.wantUploadedAt {
				t.Errorf("uploadedAt = %q, want %q", got.UploadedAt, tc.wantUploadedAt)
			}
		})
	}
}

func TestAskPostsQuestionAndDocumentID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body askRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Question != "what is this?" || body.DocumentID != "4" {
			t.Errorf("body = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "a summary"})
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL).Ask("tok1", "4", "what is this?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "a summary" {
		t.Errorf("answer = %q", answer)
	}
}
