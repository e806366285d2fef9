package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/lifecycle"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// fakeStore is an in-memory ProjectStore.
type fakeStore struct {
	projects map[string]*project.Project
	saveErr  error
}

func newFakeStore(projects ...*project.Project) *fakeStore {
	s := &fakeStore{projects: make(map[string]*project.Project)}
	for _, p := range projects {
		cp := *p
		s.projects[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) Load(_ context.Context, id string) (*project.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Save(_ context.Context, p *project.Project) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if existing, ok := s.projects[p.ID]; ok && existing.CreatedBy != p.CreatedBy {
		return &domain.InvariantError{Msg: "creator reassignment"}
	}
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(s.projects, id)
	return nil
}

func (s *fakeStore) Find(_ context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	var out []project.Project
	for _, p := range s.projects {
		if q.StudentID != "" && p.StudentID != q.StudentID {
			continue
		}
		if q.TeacherOrCreator != "" && p.TeacherID != q.TeacherOrCreator && p.CreatedBy != q.TeacherOrCreator {
			continue
		}
		if q.Classroom != "" && p.Classroom != q.Classroom {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// fakeDirectory is an in-memory UserDirectory.
type fakeDirectory struct {
	users map[string]*domain.User
}

func (d *fakeDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

// fakeFiles is an in-memory FileStore.
type fakeFiles struct {
	blobs  map[string][]byte
	getErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{blobs: make(map[string][]byte)}
}

func (f *fakeFiles) Put(_ context.Context, storedName string, data []byte) error {
	f.blobs[storedName] = data
	return nil
}

func (f *fakeFiles) Get(_ context.Context, storedName string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.blobs[storedName]
	if !ok {
		return nil, fmt.Errorf("attachment %s: %w", storedName, domain.ErrNotFound)
	}
	return data, nil
}

func (f *fakeFiles) Delete(_ context.Context, storedName string) error {
	delete(f.blobs, storedName)
	return nil
}

var (
	admin   = domain.Actor{ID: "a-1", Role: domain.RoleAdmin}
	teacher = domain.Actor{ID: "t-1", Role: domain.RoleTeacher}
	student = domain.Actor{ID: "s-1", Role: domain.RoleStudent}
)

func storedProject() *project.Project {
	return &project.Project{
		ID:          "p-1",
		Title:       "Compiler assignment",
		Description: "Build a front end",
		Status:      project.StatusAssigned,
		StudentID:   "s-1",
		TeacherID:   "t-1",
		CreatedBy:   "t-1",
	}
}

func newService(store *fakeStore, dir *fakeDirectory, files *fakeFiles) *ProjectService {
	if dir == nil {
		dir = &fakeDirectory{users: map[string]*domain.User{
			"s-1": {ID: "s-1", Name: "Lina", Email: "lina@uni.test", Role: domain.RoleStudent},
			"t-1": {ID: "t-1", Name: "Dr. Chen", Email: "chen@uni.test", Role: domain.RoleTeacher},
		}}
	}
	if files == nil {
		files = newFakeFiles()
	}
	return NewProjectService(store, dir, files, nil)
}

func TestCreateProject(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newService(store, nil, nil)

	p, err := svc.CreateProject(context.Background(), teacher, ports.CreateProjectInput{
		Title:       "Compiler assignment",
		Description: "Build a front end",
		StudentID:   "s-1",
		Tasks:       []task.Task{{Title: "Lexer"}},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	if p.Status != project.StatusAssigned {
		t.Errorf("Status = %q, want assigned when a student is supplied", p.Status)
	}
	if p.CreatedBy != teacher.ID || p.TeacherID != teacher.ID {
		t.Errorf("ownership = createdBy %q teacherID %q, want %q", p.CreatedBy, p.TeacherID, teacher.ID)
	}
	if p.Tasks[0].ID == "" {
		t.Error("task ID not assigned")
	}
	if p.Tasks[0].Status != task.StatusPending {
		t.Errorf("task Status = %q, want pending default", p.Tasks[0].Status)
	}
	if _, ok := store.projects[p.ID]; !ok {
		t.Error("project not persisted")
	}
}

func TestCreateProject_WithoutStudentStaysDraft(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(), nil, nil)

	p, err := svc.CreateProject(context.Background(), teacher, ports.CreateProjectInput{
		Title:       "Compiler assignment",
		Description: "Build a front end",
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if p.Status != project.StatusDraft {
		t.Errorf("Status = %q, want draft without a student", p.Status)
	}
}

func TestCreateProject_StudentDenied(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(), nil, nil)

	_, err := svc.CreateProject(context.Background(), student, ports.CreateProjectInput{
		Title:       "Self-assigned",
		Description: "Nope",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("CreateProject() = %v, want forbidden", err)
	}
}

func TestCreateProject_InvalidStudentReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		studentID string
	}{
		{"unknown user", "ghost"},
		{"non-student role", "t-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newService(newFakeStore(), nil, nil)
			_, err := svc.CreateProject(context.Background(), teacher, ports.CreateProjectInput{
				Title:       "Compiler assignment",
				Description: "Build a front end",
				StudentID:   tt.studentID,
			})

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CreateProject() = %v, want validation error", err)
			}
			if verr.Fields["studentId"] != "invalid student" {
				t.Errorf("Fields[studentId] = %q, want %q", verr.Fields["studentId"], "invalid student")
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(storedProject()), nil, nil)

	p, err := svc.GetProject(context.Background(), student, "p-1")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if p.ID != "p-1" {
		t.Errorf("ID = %q, want p-1", p.ID)
	}

	_, err = svc.GetProject(context.Background(), domain.Actor{ID: "s-9", Role: domain.RoleStudent}, "p-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("GetProject(outsider) = %v, want forbidden", err)
	}

	_, err = svc.GetProject(context.Background(), admin, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetProject(missing) = %v, want not found", err)
	}
}

func TestListProjects_ScopedByRole(t *testing.T) {
	t.Parallel()

	other := storedProject()
	other.ID = "p-2"
	other.StudentID = "s-2"
	other.TeacherID = "t-2"
	other.CreatedBy = "t-2"

	svc := newService(newFakeStore(storedProject(), other), nil, nil)

	got, err := svc.ListProjects(context.Background(), student, ports.ListFilter{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "p-1" {
		t.Errorf("student sees %v, want only p-1", got)
	}

	got, err = svc.ListProjects(context.Background(), teacher, ports.ListFilter{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "p-1" {
		t.Errorf("teacher sees %v, want only p-1", got)
	}

	got, err = svc.ListProjects(context.Background(), admin, ports.ListFilter{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("admin sees %d projects, want 2", len(got))
	}
}

func TestUpdateProject_StudentFieldsRestricted(t *testing.T) {
	t.Parallel()

	store := newFakeStore(storedProject())
	svc := newService(store, nil, nil)

	grade := 95
	title := "Hijacked"
	status := project.StatusSubmitted

	p, err := svc.UpdateProject(context.Background(), student, "p-1", lifecycle.Update{
		Title:  &title,
		Grade:  &grade,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	if p.Title != "Compiler assignment" {
		t.Errorf("Title = %q, student write should be dropped", p.Title)
	}
	if p.Grade != nil {
		t.Errorf("Grade = %v, student write should be dropped", *p.Grade)
	}
	if p.Status != project.StatusSubmitted {
		t.Errorf("Status = %q, want submitted (student-writable)", p.Status)
	}
	if p.SubmittedAt == nil {
		t.Error("SubmittedAt not stamped on submission")
	}
}

func TestUpdateProject_TeacherGrades(t *testing.T) {
	t.Parallel()

	store := newFakeStore(storedProject())
	svc := newService(store, nil, nil)

	grade := 88
	feedback := "solid work"
	p, err := svc.UpdateProject(context.Background(), teacher, "p-1", lifecycle.Update{
		Grade:    &grade,
		Feedback: &feedback,
	})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if p.Grade == nil || *p.Grade != 88 {
		t.Errorf("Grade = %v, want 88", p.Grade)
	}
	if p.Feedback != "solid work" {
		t.Errorf("Feedback = %q, want %q", p.Feedback, "solid work")
	}
}

func TestUpdateProject_ReassignmentChecksStudent(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(storedProject()), nil, nil)

	ghost := "ghost"
	_, err := svc.UpdateProject(context.Background(), teacher, "p-1", lifecycle.Update{
		StudentID: &ghost,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UpdateProject() = %v, want validation error for unknown student", err)
	}
}

func TestDeleteProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"admin deletes", admin, nil},
		{"owning teacher denied", teacher, domain.ErrForbidden},
		{"assigned student denied", student, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore(storedProject())
			svc := newService(store, nil, nil)

			err := svc.DeleteProject(context.Background(), tt.actor, "p-1")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("DeleteProject() error = %v", err)
				}
				if _, ok := store.projects["p-1"]; ok {
					t.Error("project still present after delete")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteProject() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteProject_ReleasesAttachments(t *testing.T) {
	t.Parallel()

	p := storedProject()
	p.Files = []project.File{{ID: "f-1", Name: "report.pdf", StoredName: "stored-1"}}

	files := newFakeFiles()
	files.blobs["stored-1"] = []byte("pdf bytes")

	svc := newService(newFakeStore(p), nil, files)

	if err := svc.DeleteProject(context.Background(), admin, "p-1"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, ok := files.blobs["stored-1"]; ok {
		t.Error("attachment bytes not released")
	}
}

func TestUploadDownloadFile(t *testing.T) {
	t.Parallel()

	files := newFakeFiles()
	svc := newService(newFakeStore(storedProject()), nil, files)

	p, err := svc.UploadFile(context.Background(), student, "p-1", ports.FileUpload{
		Name:        "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if len(p.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(p.Files))
	}

	f := p.Files[0]
	if f.Size != int64(len("pdf bytes")) || f.UploadedBy != student.ID {
		t.Errorf("file metadata = %+v", f)
	}

	dl, err := svc.DownloadFile(context.Background(), teacher, "p-1", f.ID)
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if string(dl.Data) != "pdf bytes" {
		t.Errorf("Data = %q, want original bytes", dl.Data)
	}
	if dl.File.Name != "report.pdf" {
		t.Errorf("File.Name = %q, want report.pdf", dl.File.Name)
	}
}

func TestUploadFile_Validation(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(storedProject()), nil, nil)

	_, err := svc.UploadFile(context.Background(), student, "p-1", ports.FileUpload{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UploadFile(empty) = %v, want validation error", err)
	}
}

func TestDownloadFile_UnknownFile(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(storedProject()), nil, nil)

	_, err := svc.DownloadFile(context.Background(), admin, "p-1", "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DownloadFile(missing) = %v, want not found", err)
	}
}

func TestExportXML_ResolvesNames(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(storedProject()), nil, nil)

	data, err := svc.ExportXML(context.Background(), teacher, "p-1")
	if err != nil {
		t.Fatalf("ExportXML() error = %v", err)
	}

	doc := string(data)
	for _, want := range []string{"<name>Lina</name>", "<name>Dr. Chen</name>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %s in export:\n%s", want, doc)
		}
	}
}

func TestImportXML(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newService(store, nil, nil)

	doc := `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <title>Imported</title>
  <description>From a partner system</description>
  <status>submitted</status>
  <tasks>
    <task><title>Review</title><progress>50</progress><status>in_progress</status></task>
  </tasks>
</project>`

	p, err := svc.ImportXML(context.Background(), teacher, []byte(doc))
	if err != nil {
		t.Fatalf("ImportXML() error = %v", err)
	}

	if p.CreatedBy != teacher.ID || p.TeacherID != teacher.ID {
		t.Errorf("ownership = createdBy %q teacherID %q, want importer %q", p.CreatedBy, p.TeacherID, teacher.ID)
	}
	if p.Status != project.StatusSubmitted {
		t.Errorf("Status = %q, want submitted from document", p.Status)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Progress != 50 {
		t.Errorf("Tasks = %+v", p.Tasks)
	}
	if _, ok := store.projects[p.ID]; !ok {
		t.Error("imported project not persisted")
	}
}

func TestImportXML_Errors(t *testing.T) {
	t.Parallel()

	svc := newService(newFakeStore(), nil, nil)

	_, err := svc.ImportXML(context.Background(), teacher, []byte(`<project><description>D</description></project>`))
	if !errors.Is(err, domain.ErrParse) {
		t.Errorf("ImportXML(missing title) = %v, want parse error", err)
	}

	_, err = svc.ImportXML(context.Background(), student, []byte(`<project><title>T</title><description>D</description></project>`))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("ImportXML(student) = %v, want forbidden", err)
	}
}
