package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/middleware"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/lifecycle"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

var (
	testTime    = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	testTeacher = domain.Actor{ID: "t-1", Role: domain.RoleTeacher}
)

// stubService implements ports.ProjectService with overridable functions.
// Unset functions fail the test when called.
type stubService struct {
	t *testing.T

	list     func(context.Context, domain.Actor, ports.ListFilter) ([]project.Project, error)
	get      func(context.Context, domain.Actor, string) (*project.Project, error)
	create   func(context.Context, domain.Actor, ports.CreateProjectInput) (*project.Project, error)
	update   func(context.Context, domain.Actor, string, lifecycle.Update) (*project.Project, error)
	del      func(context.Context, domain.Actor, string) error
	upload   func(context.Context, domain.Actor, string, ports.FileUpload) (*project.Project, error)
	download func(context.Context, domain.Actor, string, string) (*ports.FileDownload, error)
	export   func(context.Context, domain.Actor, string) ([]byte, error)
	importFn func(context.Context, domain.Actor, []byte) (*project.Project, error)
}

func (s *stubService) ListProjects(ctx context.Context, a domain.Actor, f ports.ListFilter) ([]project.Project, error) {
	if s.list == nil {
		s.t.Fatal("unexpected ListProjects call")
	}
	return s.list(ctx, a, f)
}

func (s *stubService) GetProject(ctx context.Context, a domain.Actor, id string) (*project.Project, error) {
	if s.get == nil {
		s.t.Fatal("unexpected GetProject call")
	}
	return s.get(ctx, a, id)
}

func (s *stubService) CreateProject(ctx context.Context, a domain.Actor, in ports.CreateProjectInput) (*project.Project, error) {
	if s.create == nil {
		s.t.Fatal("unexpected CreateProject call")
	}
	return s.create(ctx, a, in)
}

func (s *stubService) UpdateProject(ctx context.Context, a domain.Actor, id string, u lifecycle.Update) (*project.Project, error) {
	if s.update == nil {
		s.t.Fatal("unexpected UpdateProject call")
	}
	return s.update(ctx, a, id, u)
}

func (s *stubService) DeleteProject(ctx context.Context, a domain.Actor, id string) error {
	if s.del == nil {
		s.t.Fatal("unexpected DeleteProject call")
	}
	return s.del(ctx, a, id)
}

func (s *stubService) UploadFile(ctx context.Context, a domain.Actor, id string, up ports.FileUpload) (*project.Project, error) {
	if s.upload == nil {
		s.t.Fatal("unexpected UploadFile call")
	}
	return s.upload(ctx, a, id, up)
}

func (s *stubService) DownloadFile(ctx context.Context, a domain.Actor, id, fileID string) (*ports.FileDownload, error) {
	if s.download == nil {
		s.t.Fatal("unexpected DownloadFile call")
	}
	return s.download(ctx, a, id, fileID)
}

func (s *stubService) ExportXML(ctx context.Context, a domain.Actor, id string) ([]byte, error) {
	if s.export == nil {
		s.t.Fatal("unexpected ExportXML call")
	}
	return s.export(ctx, a, id)
}

func (s *stubService) ImportXML(ctx context.Context, a domain.Actor, data []byte) (*project.Project, error) {
	if s.importFn == nil {
		s.t.Fatal("unexpected ImportXML call")
	}
	return s.importFn(ctx, a, data)
}

func validProject() *project.Project {
	return &project.Project{
		ID:          "p-1",
		Title:       "Compiler assignment",
		Description: "Build a front end",
		Status:      project.StatusAssigned,
		StudentID:   "s-1",
		TeacherID:   "t-1",
		CreatedBy:   "t-1",
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

// asActor stores the actor in the request context the way the auth
// middleware does, and adds chi URL params.
func asActor(r *http.Request, actor domain.Actor, params map[string]string) *http.Request {
	ctx := middleware.WithActor(r.Context(), actor)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
