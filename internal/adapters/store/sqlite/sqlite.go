// Package sqlite persists project documents and the user directory in a
// SQLite database. Each project is stored as one JSON document per row,
// matching the whole-document write granularity of the domain; the query
// dimensions (student, teacher, creator, classroom) are mirrored into
// indexed columns.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ProjectStore  = (*Store)(nil)
	_ ports.UserDirectory = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store implements ports.ProjectStore and ports.UserDirectory over SQLite.
type Store struct {
	conn *sql.DB
}

// New opens (or creates) the database under dataDir and initializes tables.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projects.db")

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	if err := initTables(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing database tables: %w", err)
	}

	return &Store{conn: conn}, nil
}

func initTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL DEFAULT '',
			teacher_id TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL,
			classroom TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			document TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_student_id ON projects(student_id);
		CREATE INDEX IF NOT EXISTS idx_projects_teacher_id ON projects(teacher_id);
		CREATE INDEX IF NOT EXISTS idx_projects_created_by ON projects(created_by);
		CREATE INDEX IF NOT EXISTS idx_projects_classroom ON projects(classroom);
	`)
	return err
}

// Load returns the project document or domain.ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (*project.Project, error) {
	var doc string
	err := s.conn.QueryRowContext(ctx, `SELECT document FROM projects WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}

	var p project.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding project document %s: %w", id, err)
	}
	return &p, nil
}

// Save upserts the whole project document. An attempt to change an existing
// document's creator fails with domain.ErrInvariant.
func (s *Store) Save(ctx context.Context, p *project.Project) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save of project %s: %w", p.ID, err)
	}
	defer tx.Rollback()

	var existingCreator string
	err = tx.QueryRowContext(ctx, `SELECT created_by FROM projects WHERE id = ?`, p.ID).Scan(&existingCreator)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// New document.
	case err != nil:
		return fmt.Errorf("checking project %s: %w", p.ID, err)
	case existingCreator != p.CreatedBy:
		return &domain.InvariantError{
			Msg: fmt.Sprintf("project %s: createdBy may not be reassigned (%s -> %s)", p.ID, existingCreator, p.CreatedBy),
		}
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project document %s: %w", p.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, student_id, teacher_id, created_by, classroom, created_at, document)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			student_id = excluded.student_id,
			teacher_id = excluded.teacher_id,
			classroom = excluded.classroom,
			document = excluded.document
	`, p.ID, p.StudentID, p.TeacherID, p.CreatedBy, p.Classroom, p.CreatedAt.UTC().Format(time.RFC3339Nano), string(doc))
	if err != nil {
		return fmt.Errorf("saving project %s: %w", p.ID, err)
	}

	return tx.Commit()
}

// Delete removes the document, or returns domain.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Find returns projects matching the query, newest first.
func (s *Store) Find(ctx context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	query := `SELECT document FROM projects WHERE 1=1`
	var args []any

	if q.StudentID != "" {
		query += ` AND student_id = ?`
		args = append(args, q.StudentID)
	}
	if q.TeacherOrCreator != "" {
		query += ` AND (teacher_id = ? OR created_by = ?)`
		args = append(args, q.TeacherOrCreator, q.TeacherOrCreator)
	}
	if q.Classroom != "" {
		query += ` AND classroom = ?`
		args = append(args, q.Classroom)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		var p project.Project
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decoding project document: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FindByID returns the user or domain.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	var role string
	err := s.conn.QueryRowContext(ctx, `SELECT id, name, email, role FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", id, err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

// SaveUser upserts a directory entry. User accounts are managed by the
// external auth system; this keeps the local directory in sync.
func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role
	`, u.ID, u.Name, u.Email, u.Role.String())
	if err != nil {
		return fmt.Errorf("saving user %s: %w", u.ID, err)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "project-store" }

// HealthCheck implements ports.HealthChecker.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}
