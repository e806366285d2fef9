// Package authz is the single place where role checks live. It decides, for
// an actor and an already-loaded project, whether an operation is allowed and
// which project fields the actor may write. The evaluator is stateless and
// deterministic: identical inputs always yield the identical decision, and it
// never touches the store itself.
package authz

import (
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
)

// Operation enumerates the intents an actor can have on a project.
type Operation string

const (
	OpRead       Operation = "read"
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpUploadFile Operation = "upload_file"
)

// Deny reasons surfaced in AuthorizationError.
const (
	reasonNotAuthorized = "not authorized"
	reasonAdminDelete   = "only administrators can delete projects"
	reasonTeacherCreate = "only teachers can create projects"
)

// Owns reports whether the actor passes the ownership check: admins always,
// students when they are the assigned student, teachers when they are the
// responsible teacher or the creator.
func Owns(actor domain.Actor, p *project.Project) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleStudent:
		return p.StudentID != "" && actor.ID == p.StudentID
	case domain.RoleTeacher:
		return actor.ID == p.TeacherID || actor.ID == p.CreatedBy
	default:
		return false
	}
}

// CanCreate reports whether the role may create (or import) projects.
func CanCreate(role domain.Role) bool {
	return role == domain.RoleTeacher || role == domain.RoleAdmin
}

// Authorize decides whether the actor may perform op on p. A nil return means
// allow; otherwise the returned *domain.AuthorizationError carries the deny
// reason. The ownership check always runs first for read/update/delete and
// upload; delete additionally requires the admin role regardless of
// ownership.
func Authorize(actor domain.Actor, p *project.Project, op Operation) error {
	switch op {
	case OpCreate:
		if !CanCreate(actor.Role) {
			return &domain.AuthorizationError{Reason: reasonTeacherCreate}
		}
		return nil
	case OpDelete:
		if !Owns(actor, p) {
			return &domain.AuthorizationError{Reason: reasonNotAuthorized}
		}
		if actor.Role != domain.RoleAdmin {
			return &domain.AuthorizationError{Reason: reasonAdminDelete}
		}
		return nil
	case OpRead, OpUpdate, OpUploadFile:
		if !Owns(actor, p) {
			return &domain.AuthorizationError{Reason: reasonNotAuthorized}
		}
		return nil
	default:
		return &domain.AuthorizationError{Reason: reasonNotAuthorized}
	}
}
