// Package project defines the Project aggregate: coursework composed of
// sub-tasks, exchanged between a creating teacher, an assigned student, and
// graders. The project document exclusively owns its task sequence and its
// file attachment metadata.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// Project represents a coursework project. CreatedBy is set once at creation
// and never reassigned. SubmittedAt is stamped the first time the status
// transitions into submitted and never cleared afterwards.
type Project struct {
	ID          string
	Title       string
	Description string
	Classroom   string
	Status      Status
	StudentID   string
	TeacherID   string
	CreatedBy   string
	Tasks       []task.Task
	Files       []File
	Grade       *int
	Feedback    string
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a Project in draft status owned by its creator and validates
// required fields. The caller assigns a student (and flips the status to
// assigned) separately, after the student reference has been verified.
func New(title, description, createdBy string) (*Project, error) {
	p := &Project{
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		Status:      StatusDraft,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks business rules for the Project aggregate, including the
// task sequence. Returns a *domain.ValidationError (wrapping
// domain.ErrValidation) with per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.CreatedBy) == "" {
		fields["createdBy"] = domain.MsgRequired
	}
	if !p.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", p.Status)
	}
	if p.Status == StatusAssigned && p.StudentID == "" {
		fields["studentId"] = "required when status is assigned"
	}
	if p.Grade != nil && (*p.Grade < 0 || *p.Grade > 100) {
		fields["grade"] = fmt.Sprintf("must be 0-100, got %d", *p.Grade)
	}

	for i := range p.Tasks {
		if err := p.Tasks[i].Validate(); err != nil {
			fields[fmt.Sprintf("tasks[%d]", i)] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// TaskByID returns a pointer into the task sequence, or nil when absent.
func (p *Project) TaskByID(id string) *task.Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// FileByID returns a pointer into the attachment metadata, or nil when absent.
func (p *Project) FileByID(id string) *File {
	for i := range p.Files {
		if p.Files[i].ID == id {
			return &p.Files[i]
		}
	}
	return nil
}
