// Package handlers implements the inbound HTTP handlers for the project API.
package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/dto"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// Upload and import size limits.
const (
	maxUploadBytes = 20 << 20 // 20 MB per attachment
	maxImportBytes = 5 << 20  // 5 MB per XML document
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects handles GET /api/v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := ports.ListFilter{Classroom: r.URL.Query().Get("classroom")}

	projects, err := h.service.ListProjects(r.Context(), actor, filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(projects))
}

// ListClassroomProjects handles GET /api/v1/classrooms/{classroom}/projects.
func (h *ProjectHandler) ListClassroomProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	classroom, err := urlParam(r, "classroom")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	projects, err := h.service.ListProjects(r.Context(), actor, ports.ListFilter{Classroom: classroom})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(projects))
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Classroom:   req.Classroom,
		StudentID:   req.StudentID,
		Tasks:       mapTaskPayloads(req.Tasks),
	}

	created, err := h.service.CreateProject(r.Context(), actor, input)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(created))
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.service.GetProject(r.Context(), actor, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(p))
}

// UpdateProject handles PATCH /api/v1/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateProject(r.Context(), actor, id, mapUpdateRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(updated))
}

// DeleteProject handles DELETE /api/v1/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), actor, id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadFile handles POST /api/v1/projects/{id}/files. The attachment is
// sent as a multipart form with a single "file" part.
func (h *ProjectHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"file": "invalid multipart body"},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"file": "file part is required"},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		dto.WriteErrorResponse(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}

	upload := ports.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	updated, err := h.service.UploadFile(r.Context(), actor, id, upload)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(updated))
}

// DownloadFile handles GET /api/v1/projects/{id}/files/{fileId}.
func (h *ProjectHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	fileID, err := urlParam(r, "fileId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	dl, err := h.service.DownloadFile(r.Context(), actor, id, fileID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	contentType := dl.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.File.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Data)
}

// ExportXML handles GET /api/v1/projects/{id}/export.
func (h *ProjectHandler) ExportXML(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := urlParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	data, err := h.service.ExportXML(r.Context(), actor, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "project-"+id+".xml"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportXML handles POST /api/v1/projects/import. The request body is the
// raw XML document.
func (h *ProjectHandler) ImportXML(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		dto.WriteErrorResponse(w, r, &domain.ParseError{Msg: "reading request body"})
		return
	}

	created, err := h.service.ImportXML(r.Context(), actor, data)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(created))
}
