package ports

import (
	"context"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
)

// ProjectQuery filters project listings at the store. Zero-value fields mean
// "no filter" for that dimension.
type ProjectQuery struct {
	// StudentID matches projects assigned to this student.
	StudentID string
	// TeacherOrCreator matches projects where this id is the responsible
	// teacher or the creator.
	TeacherOrCreator string
	// Classroom matches the classroom label exactly.
	Classroom string
}

// ProjectStore persists project documents. Writes are whole-document,
// last-writer-wins; the store serializes concurrent writes per document.
type ProjectStore interface {
	// Load returns the project or domain.ErrNotFound.
	Load(ctx context.Context, id string) (*project.Project, error)

	// Save upserts the whole project document. It must refuse to change an
	// existing document's creator (domain.ErrInvariant).
	Save(ctx context.Context, p *project.Project) error

	// Delete removes the document, or returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Find returns projects matching the query, newest first.
	Find(ctx context.Context, q ProjectQuery) ([]project.Project, error)
}

// UserDirectory resolves user references. The core uses it to validate a
// studentId at creation time and to resolve names for XML export.
type UserDirectory interface {
	// FindByID returns the user or domain.ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// FileStore holds attachment bytes keyed by stored name. The core never
// reads file bytes itself; it tracks metadata on the project document.
type FileStore interface {
	Put(ctx context.Context, storedName string, data []byte) error

	// Get returns the bytes or domain.ErrNotFound.
	Get(ctx context.Context, storedName string) ([]byte, error)

	Delete(ctx context.Context, storedName string) error
}

// ActorResolver authenticates a request credential. Implementations verify
// only; token issuance belongs to the external auth system.
type ActorResolver interface {
	// Resolve returns the actor for a bearer token, or an error wrapping
	// domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (domain.Actor, error)
}
