package authz

import (
	"errors"
	"testing"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
)

func sampleProject() *project.Project {
	return &project.Project{
		ID:          "p-1",
		Title:       "Compiler assignment",
		Description: "Build a front end",
		Status:      project.StatusAssigned,
		StudentID:   "s-1",
		TeacherID:   "t-1",
		CreatedBy:   "t-2",
	}
}

func TestOwns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"admin always owns", domain.Actor{ID: "anyone", Role: domain.RoleAdmin}, true},
		{"assigned student owns", domain.Actor{ID: "s-1", Role: domain.RoleStudent}, true},
		{"other student does not own", domain.Actor{ID: "s-2", Role: domain.RoleStudent}, false},
		{"responsible teacher owns", domain.Actor{ID: "t-1", Role: domain.RoleTeacher}, true},
		{"creating teacher owns", domain.Actor{ID: "t-2", Role: domain.RoleTeacher}, true},
		{"unrelated teacher does not own", domain.Actor{ID: "t-3", Role: domain.RoleTeacher}, false},
		{"unknown role does not own", domain.Actor{ID: "s-1", Role: "guest"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Owns(tt.actor, sampleProject()); got != tt.want {
				t.Errorf("Owns(%v) = %v, want %v", tt.actor, got, tt.want)
			}
		})
	}
}

func TestOwns_UnassignedProject(t *testing.T) {
	t.Parallel()

	p := sampleProject()
	p.StudentID = ""

	// A student cannot claim an unassigned project even with a matching
	// empty ID.
	actor := domain.Actor{ID: "", Role: domain.RoleStudent}
	if Owns(actor, p) {
		t.Error("Owns() = true for empty student ID on unassigned project, want false")
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := domain.Actor{ID: "a-1", Role: domain.RoleAdmin}
	student := domain.Actor{ID: "s-1", Role: domain.RoleStudent}
	teacher := domain.Actor{ID: "t-1", Role: domain.RoleTeacher}
	outsider := domain.Actor{ID: "s-9", Role: domain.RoleStudent}

	tests := []struct {
		name      string
		actor     domain.Actor
		op        Operation
		wantAllow bool
	}{
		{"admin reads", admin, OpRead, true},
		{"student reads own", student, OpRead, true},
		{"outsider cannot read", outsider, OpRead, false},
		{"student updates own", student, OpUpdate, true},
		{"outsider cannot update", outsider, OpUpdate, false},
		{"admin deletes", admin, OpDelete, true},
		{"teacher cannot delete", teacher, OpDelete, false},
		{"student cannot delete", student, OpDelete, false},
		{"teacher creates", teacher, OpCreate, true},
		{"admin creates", admin, OpCreate, true},
		{"student cannot create", student, OpCreate, false},
		{"student uploads to own", student, OpUploadFile, true},
		{"outsider cannot upload", outsider, OpUploadFile, false},
		{"unknown operation denied", admin, Operation("purge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Authorize(tt.actor, sampleProject(), tt.op)
			if tt.wantAllow {
				if err != nil {
					t.Errorf("Authorize() = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Authorize() = nil, want deny")
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("errors.Is(err, ErrForbidden) = false, got %v", err)
			}
		})
	}
}

func TestWritableFields(t *testing.T) {
	t.Parallel()

	studentSet := WritableFields(domain.RoleStudent)
	if !studentSet.Has(FieldStatus) || !studentSet.Has(FieldTasks) {
		t.Errorf("student set missing status/tasks: %v", studentSet)
	}
	for _, f := range []Field{FieldTitle, FieldDescription, FieldGrade, FieldFeedback, FieldStudentID, FieldClassroom} {
		if studentSet.Has(f) {
			t.Errorf("student set unexpectedly contains %q", f)
		}
	}

	for _, role := range []domain.Role{domain.RoleTeacher, domain.RoleAdmin} {
		staffSet := WritableFields(role)
		for _, f := range []Field{
			FieldTitle, FieldDescription, FieldStatus, FieldTasks,
			FieldGrade, FieldFeedback, FieldStudentID, FieldClassroom,
		} {
			if !staffSet.Has(f) {
				t.Errorf("%s set missing %q", role, f)
			}
		}
	}
}
