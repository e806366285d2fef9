// Package app provides application services that orchestrate use cases by
// coordinating domain logic and infrastructure through port interfaces.
// Every mutation runs authorize -> apply -> persist against one loaded
// project snapshot; the store serializes concurrent writes per document.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/authz"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/lifecycle"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/xmlcodec"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService. It asks the authorization
// evaluator for an access decision, applies mutations through the lifecycle
// rules, and persists the result. The codec is invoked only on explicit
// import/export and never participates in authorization.
type ProjectService struct {
	store  ports.ProjectStore
	users  ports.UserDirectory
	files  ports.FileStore
	logger *slog.Logger
	now    func() time.Time
}

// NewProjectService creates a ProjectService over the given store, user
// directory, and file store ports.
func NewProjectService(store ports.ProjectStore, users ports.UserDirectory, files ports.FileStore, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		store:  store,
		users:  users,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// ListProjects returns projects visible to the actor, newest first. Students
// see their assigned projects; teachers see projects they own or created;
// admins see everything.
func (s *ProjectService) ListProjects(ctx context.Context, actor domain.Actor, filter ports.ListFilter) ([]project.Project, error) {
	s.logger.InfoContext(ctx, "listing projects",
		slog.String("actor_id", actor.ID),
		slog.String("role", actor.Role.String()),
	)

	q := ports.ProjectQuery{Classroom: filter.Classroom}
	switch actor.Role {
	case domain.RoleStudent:
		q.StudentID = actor.ID
	case domain.RoleTeacher:
		q.TeacherOrCreator = actor.ID
	}

	projects, err := s.store.Find(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return projects, nil
}

// GetProject returns a single project after the ownership check.
func (s *ProjectService) GetProject(ctx context.Context, actor domain.Actor, id string) (*project.Project, error) {
	p, err := s.load(ctx, "GetProject", id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, p, authz.OpRead); err != nil {
		return nil, err
	}

	return p, nil
}

// CreateProject creates a project owned by the acting teacher or admin. A
// supplied student reference must resolve to a student-role user. The project
// starts in assigned status when a student is supplied, draft otherwise.
func (s *ProjectService) CreateProject(ctx context.Context, actor domain.Actor, input ports.CreateProjectInput) (*project.Project, error) {
	s.logger.InfoContext(ctx, "creating project",
		slog.String("actor_id", actor.ID),
		slog.String("title", input.Title),
	)

	if err := authz.Authorize(actor, nil, authz.OpCreate); err != nil {
		return nil, err
	}

	if input.StudentID != "" {
		if err := s.checkStudent(ctx, input.StudentID); err != nil {
			return nil, err
		}
	}

	p, err := project.New(input.Title, input.Description, actor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p.ID = uuid.NewString()
	p.TeacherID = actor.ID
	p.Classroom = input.Classroom
	p.Tasks = normalizeTasks(input.Tasks)
	p.CreatedAt = now
	p.UpdatedAt = now

	if input.StudentID != "" {
		p.StudentID = input.StudentID
		p.Status = project.StatusAssigned
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to save project",
			slog.String("operation", "CreateProject"),
			slog.String("project_id", p.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// UpdateProject applies an authorized update through the lifecycle rules.
// Fields outside the actor's writable set are silently ignored.
func (s *ProjectService) UpdateProject(ctx context.Context, actor domain.Actor, id string, upd lifecycle.Update) (*project.Project, error) {
	s.logger.InfoContext(ctx, "updating project",
		slog.String("actor_id", actor.ID),
		slog.String("project_id", id),
	)

	p, err := s.load(ctx, "UpdateProject", id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, p, authz.OpUpdate); err != nil {
		return nil, err
	}

	upd = upd.Restrict(authz.WritableFields(actor.Role))

	if upd.StudentID != nil && *upd.StudentID != "" && *upd.StudentID != p.StudentID {
		if err := s.checkStudent(ctx, *upd.StudentID); err != nil {
			return nil, err
		}
	}

	if upd.Tasks != nil {
		tasks := normalizeTasks(*upd.Tasks)
		upd.Tasks = &tasks
	}

	if err := lifecycle.Apply(p, upd, s.now()); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to save project",
			slog.String("operation", "UpdateProject"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// DeleteProject deletes a project and releases its attachments. Admin only.
func (s *ProjectService) DeleteProject(ctx context.Context, actor domain.Actor, id string) error {
	s.logger.InfoContext(ctx, "deleting project",
		slog.String("actor_id", actor.ID),
		slog.String("project_id", id),
	)

	p, err := s.load(ctx, "DeleteProject", id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, p, authz.OpDelete); err != nil {
		return err
	}

	// Release attachment bytes before the document disappears. A failed
	// release is logged and skipped so the delete itself still lands.
	for _, f := range p.Files {
		if err := s.files.Delete(ctx, f.StoredName); err != nil {
			s.logger.WarnContext(ctx, "failed to release attachment",
				slog.String("operation", "DeleteProject"),
				slog.String("project_id", id),
				slog.String("file_id", f.ID),
				slog.Any("error", err),
			)
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete project",
			slog.String("operation", "DeleteProject"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// UploadFile stores an attachment and records its metadata on the project.
func (s *ProjectService) UploadFile(ctx context.Context, actor domain.Actor, id string, upload ports.FileUpload) (*project.Project, error) {
	s.logger.InfoContext(ctx, "uploading file",
		slog.String("actor_id", actor.ID),
		slog.String("project_id", id),
		slog.String("file_name", upload.Name),
	)

	if upload.Name == "" || len(upload.Data) == 0 {
		return nil, domain.NewValidationError("file", "no file uploaded")
	}

	p, err := s.load(ctx, "UploadFile", id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, p, authz.OpUploadFile); err != nil {
		return nil, err
	}

	storedName := uuid.NewString()
	if err := s.files.Put(ctx, storedName, upload.Data); err != nil {
		s.logger.ErrorContext(ctx, "failed to store attachment",
			slog.String("operation", "UploadFile"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	now := s.now()
	p.Files = append(p.Files, project.File{
		ID:          uuid.NewString(),
		Name:        upload.Name,
		StoredName:  storedName,
		ContentType: upload.ContentType,
		Size:        int64(len(upload.Data)),
		UploadedBy:  actor.ID,
		UploadedAt:  now,
	})
	p.UpdatedAt = now

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to save project",
			slog.String("operation", "UploadFile"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// DownloadFile returns one attachment's metadata and bytes after the
// ownership check.
func (s *ProjectService) DownloadFile(ctx context.Context, actor domain.Actor, id, fileID string) (*ports.FileDownload, error) {
	p, err := s.load(ctx, "DownloadFile", id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, p, authz.OpRead); err != nil {
		return nil, err
	}

	f := p.FileByID(fileID)
	if f == nil {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	data, err := s.files.Get(ctx, f.StoredName)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read attachment",
			slog.String("operation", "DownloadFile"),
			slog.String("project_id", id),
			slog.String("file_id", fileID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &ports.FileDownload{File: *f, Data: data}, nil
}

// ExportXML renders the project as the canonical XML document with student
// and teacher names resolved from the directory.
func (s *ProjectService) ExportXML(ctx context.Context, actor domain.Actor, id string) ([]byte, error) {
	s.logger.InfoContext(ctx, "exporting project",
		slog.String("actor_id", actor.ID),
		slog.String("project_id", id),
	)

	p, err := s.load(ctx, "ExportXML", id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, p, authz.OpRead); err != nil {
		return nil, err
	}

	student := s.resolvePerson(ctx, p.StudentID)
	teacher := s.resolvePerson(ctx, p.TeacherID)

	return xmlcodec.Encode(p, student, teacher)
}

// ImportXML creates a project from an XML document. The importing actor
// becomes creator and responsible teacher.
func (s *ProjectService) ImportXML(ctx context.Context, actor domain.Actor, data []byte) (*project.Project, error) {
	s.logger.InfoContext(ctx, "importing project",
		slog.String("actor_id", actor.ID),
	)

	if err := authz.Authorize(actor, nil, authz.OpCreate); err != nil {
		return nil, err
	}

	draft, err := xmlcodec.Decode(data)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &project.Project{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		TeacherID:   actor.ID,
		CreatedBy:   actor.ID,
		Tasks:       normalizeTasks(draft.Tasks),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to save project",
			slog.String("operation", "ImportXML"),
			slog.String("project_id", p.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// load fetches a project and logs store failures with operation context.
func (s *ProjectService) load(ctx context.Context, op, id string) (*project.Project, error) {
	p, err := s.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to load project",
				slog.String("operation", op),
				slog.String("project_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}
	return p, nil
}

// checkStudent verifies that a student reference points at an existing user
// whose role is student.
func (s *ProjectService) checkStudent(ctx context.Context, studentID string) error {
	usr, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("studentId", "invalid student")
		}
		return err
	}
	if usr.Role != domain.RoleStudent {
		return domain.NewValidationError("studentId", "invalid student")
	}
	return nil
}

// resolvePerson looks up a user for export; an unset or unresolvable
// reference exports as an empty element.
func (s *ProjectService) resolvePerson(ctx context.Context, userID string) *xmlcodec.Person {
	if userID == "" {
		return nil
	}
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "unresolvable user reference in export",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil
	}
	return &xmlcodec.Person{ID: usr.ID, Name: usr.Name, Email: usr.Email}
}

// normalizeTasks assigns ids to new tasks (preserving existing identities)
// and defaults an unset status to pending.
func normalizeTasks(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].Status == "" {
			out[i].Status = task.StatusPending
		}
	}
	return out
}
