package notes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/note-nest/internal/auth"
)

type stubNoteRepo struct {
	notes     []Note
	createErr error
}

func (s *stubNoteRepo) Create(ctx context.Context, n *Note) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.notes = append(s.notes, *n)
	return nil
}

func (s *stubNoteRepo) ListByAccount(ctx context.Context, accountID string) ([]Note, error) {
	result := []Note{}
	for _, n := range s.notes {
		if n.AccountID == accountID {
			result = append(result, n)
		}
	}
	return result, nil
}

func newTestRouter(repo Repository, accountID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(repo, logger)

	router := gin.New()
	if accountID != "" {
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextAccountKey, accountID)
		})
	}
	router.POST("/notes", h.Create)
	router.GET("/notes", h.List)
	return router
}

func TestCreateNote(t *testing.T) {
	repo := &stubNoteRepo{}
	router := newTestRouter(repo, "account-123")

	req := httptest.NewRequest(http.MethodPost, "/notes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var got Note
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.AccountID != "account-123" {
		t.Fatalf("accountId = %q, want account-123", got.AccountID)
	}
	if got.Text != "" {
		t.Fatalf("new note text = %q, want empty", got.Text)
	}
	if len(repo.notes) != 1 {
		t.Fatalf("stored notes = %d, want 1", len(repo.notes))
	}
}

func TestCreateNoteDanglingAccount(t *testing.T) {
	repo := &stubNoteRepo{createErr: ErrAccountMissing}
	router := newTestRouter(repo, "account-gone")

	req := httptest.NewRequest(http.MethodPost, "/notes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateNoteWithoutAccountContext(t *testing.T) {
	router := newTestRouter(&stubNoteRepo{}, "")

	req := httptest.NewRequest(http.MethodPost, "/notes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestListNotes(t *testing.T) {
	repo := &stubNoteRepo{}
	router := newTestRouter(repo, "account-123")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/notes", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("create status = %d, want 200", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	var got []Note
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("listed notes = %d, want 2", len(got))
	}
}
