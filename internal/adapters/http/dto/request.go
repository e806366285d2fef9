package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// TaskPayload represents one task within a project create or update body.
// An empty ID marks a new task; existing tasks keep their identity.
type TaskPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Progress    int    `json:"progress,omitempty"`
	Status      string `json:"status,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

func (t *TaskPayload) validate(prefix string, fields map[string]string) {
	if strings.TrimSpace(t.Title) == "" {
		fields[prefix+".title"] = msgRequired
	}
	if t.Status != "" && !task.Status(t.Status).IsValid() {
		fields[prefix+".status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if t.Progress < 0 || t.Progress > 100 {
		fields[prefix+".progress"] = fmt.Sprintf("must be 0-100, got %d", t.Progress)
	}
	if t.Deadline != "" {
		if _, err := ParseDate(t.Deadline); err != nil {
			fields[prefix+".deadline"] = fmt.Sprintf("invalid date: %q", t.Deadline)
		}
	}
}

// CreateProjectRequest represents the JSON body for creating a new project.
type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Classroom   string        `json:"classroom,omitempty"`
	StudentID   string        `json:"student_id,omitempty"`
	Tasks       []TaskPayload `json:"tasks,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(r.Description) == "" {
		fields["description"] = msgRequired
	}
	for i := range r.Tasks {
		r.Tasks[i].validate(fmt.Sprintf("tasks[%d]", i), fields)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateProjectRequest represents the JSON body for updating a project.
// All fields are optional; nil means "do not change this field". Fields the
// actor may not write are ignored by the service, not rejected here.
type UpdateProjectRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Classroom   *string        `json:"classroom,omitempty"`
	Status      *string        `json:"status,omitempty"`
	Tasks       *[]TaskPayload `json:"tasks,omitempty"`
	Grade       *int           `json:"grade,omitempty"`
	Feedback    *string        `json:"feedback,omitempty"`
	StudentID   *string        `json:"student_id,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		fields["description"] = msgMustNotEmpty
	}
	if r.Status != nil && !project.Status(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}
	if r.Grade != nil && (*r.Grade < 0 || *r.Grade > 100) {
		fields["grade"] = fmt.Sprintf("must be 0-100, got %d", *r.Grade)
	}
	if r.Tasks != nil {
		for i := range *r.Tasks {
			(*r.Tasks)[i].validate(fmt.Sprintf("tasks[%d]", i), fields)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ParseDate accepts full ISO-8601 timestamps and bare dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
