// Package audit records administrative changes. Writes are best-effort: a
// failed audit insert is logged and never fails the caller.
package audit

import (
	"context"
	"log/slog"
	"time"
)

type Entry struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Recorder wraps a Repository. A nil Recorder or nil Repository is a no-op.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, userID, action string, details map[string]any) {
	if r == nil || r.repo == nil {
		return
	}
	if err := r.repo.Insert(ctx, Entry{UserID: userID, Action: action, Details: details}); err != nil {
		slog.Warn("Failed to write audit log", "action", action, "user_id", userID, "error", err)
	}
}

// Recent returns the newest entries first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if r == nil || r.repo == nil {
		return []Entry{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return r.repo.List(ctx, limit)
}
