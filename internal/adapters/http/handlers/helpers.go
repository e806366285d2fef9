package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/dto"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/middleware"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/lifecycle"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// requireActor extracts the authenticated actor injected by the auth
// middleware. On failure it writes a 401 response and returns false.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		dto.WriteErrorResponse(w, r, domain.ErrUnauthenticated)
		return domain.Actor{}, false
	}
	return actor, true
}

// urlParam extracts a required URL parameter from the chi route context.
// Returns a *domain.ValidationError if the parameter is empty.
func urlParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{name: fmt.Sprintf("%s is required", name)},
		}
	}
	return value, nil
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// mapTaskPayloads converts task payloads to domain tasks. Deadlines have
// already been validated as parseable.
func mapTaskPayloads(payloads []dto.TaskPayload) []task.Task {
	tasks := make([]task.Task, len(payloads))
	for i, p := range payloads {
		t := task.Task{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Progress:    p.Progress,
			Status:      task.Status(p.Status),
			AssignedTo:  p.AssignedTo,
		}
		if p.Deadline != "" {
			if deadline, err := dto.ParseDate(p.Deadline); err == nil {
				t.Deadline = &deadline
			}
		}
		tasks[i] = t
	}
	return tasks
}

// mapUpdateRequest converts an UpdateProjectRequest DTO to a lifecycle update.
func mapUpdateRequest(req *dto.UpdateProjectRequest) lifecycle.Update {
	upd := lifecycle.Update{
		Title:       req.Title,
		Description: req.Description,
		Classroom:   req.Classroom,
		Grade:       req.Grade,
		Feedback:    req.Feedback,
		StudentID:   req.StudentID,
	}
	if req.Status != nil {
		status := project.Status(*req.Status)
		upd.Status = &status
	}
	if req.Tasks != nil {
		tasks := mapTaskPayloads(*req.Tasks)
		upd.Tasks = &tasks
	}
	return upd
}
