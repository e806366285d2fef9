// Package lifecycle applies authorized updates to a project, enforcing the
// state-dependent side effects: submittedAt is stamped exactly once on the
// transition edge into submitted, and a task moved to completed has its
// progress forced to 100. No transition table is enforced beyond enum
// membership; any status may follow any other.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/authz"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// Update is the set of proposed field changes for one project write.
// Nil means "leave unchanged". Tasks, when set, replaces the entire task
// sequence atomically (last writer wins at project-document granularity).
type Update struct {
	Title       *string
	Description *string
	Classroom   *string
	Status      *project.Status
	Tasks       *[]task.Task
	Grade       *int
	Feedback    *string
	StudentID   *string
}

// Restrict returns a copy of the update with every field outside the allowed
// set cleared. Disallowed fields are silently dropped, not rejected.
func (u Update) Restrict(allowed authz.FieldSet) Update {
	if !allowed.Has(authz.FieldTitle) {
		u.Title = nil
	}
	if !allowed.Has(authz.FieldDescription) {
		u.Description = nil
	}
	if !allowed.Has(authz.FieldClassroom) {
		u.Classroom = nil
	}
	if !allowed.Has(authz.FieldStatus) {
		u.Status = nil
	}
	if !allowed.Has(authz.FieldTasks) {
		u.Tasks = nil
	}
	if !allowed.Has(authz.FieldGrade) {
		u.Grade = nil
	}
	if !allowed.Has(authz.FieldFeedback) {
		u.Feedback = nil
	}
	if !allowed.Has(authz.FieldStudentID) {
		u.StudentID = nil
	}
	return u
}

// Apply mutates p in place with the proposed update. The update must already
// be restricted to the actor's writable field set. Returns a
// *domain.ValidationError when the result would violate a project invariant;
// on error p may be partially modified and must be discarded.
func Apply(p *project.Project, u Update, now time.Time) error {
	if u.Status != nil {
		if !u.Status.IsValid() {
			return domain.NewValidationError("status", fmt.Sprintf("invalid: %q", *u.Status))
		}
		// Stamp only on the edge into submitted, never again.
		if *u.Status == project.StatusSubmitted && p.Status != project.StatusSubmitted && p.SubmittedAt == nil {
			t := now
			p.SubmittedAt = &t
		}
		p.Status = *u.Status
	}

	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Classroom != nil {
		p.Classroom = *u.Classroom
	}
	if u.Feedback != nil {
		p.Feedback = *u.Feedback
	}
	if u.Grade != nil {
		g := *u.Grade
		p.Grade = &g
	}
	if u.StudentID != nil {
		p.StudentID = *u.StudentID
	}

	if u.Tasks != nil {
		tasks := make([]task.Task, len(*u.Tasks))
		copy(tasks, *u.Tasks)
		for i := range tasks {
			if tasks[i].Status == task.StatusCompleted {
				tasks[i].Progress = 100
			}
		}
		p.Tasks = tasks
	}

	p.UpdatedAt = now

	return p.Validate()
}
