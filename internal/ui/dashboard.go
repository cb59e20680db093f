package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/app"
	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

// dashboardState holds the transient document list for one dashboard visit.
// Loads are tagged with a generation; a response from a superseded load is
// discarded instead of overwriting newer state.
type dashboardState struct {
	mu   sync.Mutex
	gen  uint64
	docs []domain.Document
}

// beginLoad starts a new load and invalidates any in-flight one.
func (d *dashboardState) beginLoad() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	return d.gen
}

// apply installs the result of load gen. Stale results return false and
// leave state alone.
func (d *dashboardState) apply(gen uint64, docs []domain.Document) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.docs = docs
	return true
}

func (d *dashboardState) documents() []domain.Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.docs
}

func (u *UI) dashboardScreen() (quit bool) {
	state := &dashboardState{}
	u.loadDocuments(state)
	for {
		docs := state.documents()
		u.printDocuments(docs, "")
		u.printf("[#] chat  [u] upload  [l] add link  [d #] delete  [s text] search  [t] theme  [r] refresh  [x] logout  [q] quit\n")
		input := u.prompt("> ")
		if u.eof {
			return true
		}
		switch {
		case input == "q":
			return true
		case input == "x":
			if err := u.app.Logout(); err != nil {
				u.printf("%s\n", err)
			}
			return false
		case input == "r":
			u.loadDocuments(state)
		case input == "u":
			u.uploadScreen()
			u.loadDocuments(state)
		case input == "l":
			url := u.prompt("url: ")
			if err := u.app.UploadLink(url); err != nil {
				u.printf("%s\n", app.FailureMessage(err))
			} else {
				u.loadDocuments(state)
			}
		case input == "t":
			theme := "dark"
			if u.app.Theme() == "dark" {
				theme = "light"
			}
			if err := u.app.SetTheme(theme); err == nil {
				u.printf("theme: %s\n", theme)
			}
		case strings.HasPrefix(input, "d "):
			if doc, ok := pickDocument(docs, strings.TrimPrefix(input, "d ")); ok {
				// Best-effort: no error surface, the list is re-fetched.
				u.app.DeleteDocument(doc.ID)
				u.loadDocuments(state)
			}
		case strings.HasPrefix(input, "s "):
			u.printDocuments(docs, strings.TrimPrefix(input, "s "))
		default:
			if doc, ok := pickDocument(docs, input); ok {
				u.chatScreen(doc)
			}
		}
	}
}

// loadDocuments performs one fresh registry fetch for this visit.
func (u *UI) loadDocuments(state *dashboardState) {
	gen := state.beginLoad()
	state.apply(gen, u.app.ListDocuments())
}

func (u *UI) uploadScreen() {
	path := u.prompt("file path: ")
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		u.printf("Failed to upload document\n")
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		u.printf("Failed to upload document\n")
		return
	}
	doc, err := u.app.UploadDocument(domain.FileUpload{
		Name:    info.Name(),
		Size:    info.Size(),
		Content: f,
	})
	if err != nil {
		u.printf("%s\n", app.FailureMessage(err))
		return
	}
	u.printf("Document uploaded successfully! (%s)\n", doc.FileName)
}

func (u *UI) printDocuments(docs []domain.Document, query string) {
	filtered := filterDocuments(docs, query)
	if len(filtered) == 0 {
		u.printf("\nNo documents yet. Upload your first document to start chatting!\n")
		return
	}
	u.printf("\nYour Documents\n")
	for i, doc := range filtered {
		u.printf("  [%d] %s  %s  uploaded %s\n", i+1, doc.FileName, formatFileSize(doc.Size), doc.UploadedAt)
	}
}

func pickDocument(docs []domain.Document, input string) (domain.Document, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(docs) {
		return domain.Document{}, false
	}
	return docs[n-1], true
}

func filterDocuments(docs []domain.Document, query string) []domain.Document {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return docs
	}
	filtered := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.FileName), query) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

func formatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := 0
	value := float64(bytes)
	for value >= k && i < len(sizes)-1 {
		value /= k
		i++
	}
	return fmt.Sprintf("%.2f %s", value, sizes[i])
}
