package ports

import (
	"context"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/lifecycle"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// CreateProjectInput carries the caller-supplied fields for a new project.
// The acting teacher or admin becomes the creator and responsible teacher.
type CreateProjectInput struct {
	Title       string
	Description string
	Classroom   string
	StudentID   string
	Tasks       []task.Task
}

// ListFilter narrows project listings. The acting role additionally scopes
// the result: students see only their assigned projects, teachers only those
// they own or created.
type ListFilter struct {
	Classroom string
}

// FileUpload carries one attachment's bytes plus its client-supplied metadata.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileDownload pairs attachment metadata with its bytes.
type FileDownload struct {
	File project.File
	Data []byte
}

// ProjectService defines the service port for the coursework project domain.
// Every operation takes the acting principal; authorization failures surface
// as errors wrapping domain.ErrForbidden and are never retried.
type ProjectService interface {
	// ListProjects returns projects visible to the actor, newest first.
	ListProjects(ctx context.Context, actor domain.Actor, filter ListFilter) ([]project.Project, error)

	// GetProject returns a single project after the ownership check.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, actor domain.Actor, id string) (*project.Project, error)

	// CreateProject creates a project. Only teachers and admins may create;
	// a supplied StudentID must reference a student-role user or the call
	// fails with domain.ErrValidation. The project starts in assigned status
	// when a student is supplied, draft otherwise.
	CreateProject(ctx context.Context, actor domain.Actor, input CreateProjectInput) (*project.Project, error)

	// UpdateProject applies an update through the lifecycle rules. Fields
	// outside the actor's writable set are silently ignored.
	UpdateProject(ctx context.Context, actor domain.Actor, id string, upd lifecycle.Update) (*project.Project, error)

	// DeleteProject deletes a project and releases its file attachments.
	// Restricted to admins regardless of ownership.
	DeleteProject(ctx context.Context, actor domain.Actor, id string) error

	// UploadFile stores an attachment and records its metadata on the
	// project. Gated by the ownership check only.
	UploadFile(ctx context.Context, actor domain.Actor, id string, upload FileUpload) (*project.Project, error)

	// DownloadFile returns one attachment's metadata and bytes.
	DownloadFile(ctx context.Context, actor domain.Actor, id, fileID string) (*FileDownload, error)

	// ExportXML renders the project as the canonical XML document with
	// student and teacher names resolved.
	ExportXML(ctx context.Context, actor domain.Actor, id string) ([]byte, error)

	// ImportXML creates a project from an XML document. The importing actor
	// becomes creator and responsible teacher; the codec never assigns
	// identities. Malformed input fails with domain.ErrParse.
	ImportXML(ctx context.Context, actor domain.Actor, data []byte) (*project.Project, error)
}
