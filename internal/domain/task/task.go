// Package task defines the Task entity. Tasks are exclusively owned by a
// Project and have no independent lifecycle: they are loaded and saved as
// part of the project document.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
)

// Task represents a single sub-task of a project with progress tracking.
type Task struct {
	ID          string
	Title       string
	Description string
	Deadline    *time.Time
	Progress    int
	Status      Status
	AssignedTo  string
}

// New creates a Task with defaults applied (status pending, progress 0) and
// validates required fields. Returns a *domain.ValidationError on failure.
func New(title, description string) (*Task, error) {
	t := &Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if t.Progress < 0 || t.Progress > 100 {
		fields["progress"] = fmt.Sprintf("must be 0-100, got %d", t.Progress)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
