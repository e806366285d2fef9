// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// ProjectResponse represents a single project in HTTP responses.
type ProjectResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Classroom   string         `json:"classroom,omitempty"`
	Status      string         `json:"status"`
	StudentID   string         `json:"student_id,omitempty"`
	TeacherID   string         `json:"teacher_id,omitempty"`
	CreatedBy   string         `json:"created_by"`
	Tasks       []TaskResponse `json:"tasks"`
	Files       []FileResponse `json:"files,omitempty"`
	Grade       *int           `json:"grade,omitempty"`
	Feedback    string         `json:"feedback,omitempty"`
	SubmittedAt string         `json:"submitted_at,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Progress    int    `json:"progress"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// FileResponse represents attachment metadata in HTTP responses. The bytes
// are served by the download endpoint, never inlined.
type FileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	UploadedBy  string `json:"uploaded_by"`
	UploadedAt  string `json:"uploaded_at"`
}

// ToProjectResponse converts a domain Project aggregate to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Classroom:   p.Classroom,
		Status:      p.Status.String(),
		StudentID:   p.StudentID,
		TeacherID:   p.TeacherID,
		CreatedBy:   p.CreatedBy,
		Grade:       p.Grade,
		Feedback:    p.Feedback,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}

	if p.SubmittedAt != nil {
		resp.SubmittedAt = p.SubmittedAt.Format(time.RFC3339)
	}

	resp.Tasks = make([]TaskResponse, len(p.Tasks))
	for i := range p.Tasks {
		resp.Tasks[i] = ToTaskResponse(&p.Tasks[i])
	}

	if len(p.Files) > 0 {
		resp.Files = make([]FileResponse, len(p.Files))
		for i, f := range p.Files {
			resp.Files[i] = FileResponse{
				ID:          f.ID,
				Name:        f.Name,
				ContentType: f.ContentType,
				Size:        f.Size,
				UploadedBy:  f.UploadedBy,
				UploadedAt:  f.UploadedAt.Format(time.RFC3339),
			}
		}
	}

	return resp
}

// ToProjectListResponse converts a slice of domain Project aggregates to an
// HTTP list response DTO.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Progress:    t.Progress,
		Status:      t.Status.String(),
		AssignedTo:  t.AssignedTo,
	}
	if t.Deadline != nil {
		resp.Deadline = t.Deadline.Format(time.RFC3339)
	}
	return resp
}
