package authz

import "github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"

// Field names a project update may carry. Fields outside an actor's writable
// set are silently dropped from the update, never rejected.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
	FieldTasks       Field = "tasks"
	FieldGrade       Field = "grade"
	FieldFeedback    Field = "feedback"
	FieldStudentID   Field = "studentId"
	FieldClassroom   Field = "classroom"
)

// FieldSet is the subset of project fields an actor may write in one update.
type FieldSet map[Field]struct{}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

func newFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

var (
	studentWritable = newFieldSet(FieldStatus, FieldTasks)
	staffWritable   = newFieldSet(
		FieldTitle, FieldDescription, FieldStatus, FieldTasks,
		FieldGrade, FieldFeedback, FieldStudentID, FieldClassroom,
	)
)

// WritableFields returns the writable field set for a role that has already
// passed the ownership check. Students may only move the workflow and edit
// tasks; teachers and admins may additionally retitle, grade, reassign, and
// comment.
func WritableFields(role domain.Role) FieldSet {
	if role == domain.RoleStudent {
		return studentWritable
	}
	return staffWritable
}
