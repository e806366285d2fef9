package dto

import (
	"errors"
	"testing"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
)

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %v", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func TestCreateProjectRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       CreateProjectRequest
		wantField string
	}{
		{
			name: "valid request passes",
			req: CreateProjectRequest{
				Title:       "Compiler assignment",
				Description: "Build a front end",
				Tasks:       []TaskPayload{{Title: "Lexer"}},
			},
		},
		{
			name:      "missing title fails",
			req:       CreateProjectRequest{Description: "D"},
			wantField: "title",
		},
		{
			name:      "missing description fails",
			req:       CreateProjectRequest{Title: "T"},
			wantField: "description",
		},
		{
			name: "task without title fails",
			req: CreateProjectRequest{
				Title:       "T",
				Description: "D",
				Tasks:       []TaskPayload{{Progress: 10}},
			},
			wantField: "tasks[0].title",
		},
		{
			name: "task progress out of range fails",
			req: CreateProjectRequest{
				Title:       "T",
				Description: "D",
				Tasks:       []TaskPayload{{Title: "X", Progress: 150}},
			},
			wantField: "tasks[0].progress",
		},
		{
			name: "task bad status fails",
			req: CreateProjectRequest{
				Title:       "T",
				Description: "D",
				Tasks:       []TaskPayload{{Title: "X", Status: "done"}},
			},
			wantField: "tasks[0].status",
		},
		{
			name: "task bad deadline fails",
			req: CreateProjectRequest{
				Title:       "T",
				Description: "D",
				Tasks:       []TaskPayload{{Title: "X", Deadline: "tomorrow"}},
			},
			wantField: "tasks[0].deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			requireValidationField(t, err, tt.wantField)
		})
	}
}

func TestUpdateProjectRequest_Validate(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name      string
		req       UpdateProjectRequest
		wantField string
	}{
		{
			name: "empty update passes",
			req:  UpdateProjectRequest{},
		},
		{
			name: "valid status passes",
			req:  UpdateProjectRequest{Status: strPtr("submitted")},
		},
		{
			name:      "blank title fails",
			req:       UpdateProjectRequest{Title: strPtr("  ")},
			wantField: "title",
		},
		{
			name:      "unknown status fails",
			req:       UpdateProjectRequest{Status: strPtr("archived")},
			wantField: "status",
		},
		{
			name:      "grade out of range fails",
			req:       UpdateProjectRequest{Grade: intPtr(101)},
			wantField: "grade",
		},
		{
			name:      "task validation runs",
			req:       UpdateProjectRequest{Tasks: &[]TaskPayload{{Title: ""}}},
			wantField: "tasks[0].title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			requireValidationField(t, err, tt.wantField)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("2026-04-01T10:00:00Z"); err != nil {
		t.Errorf("ParseDate(RFC3339) error = %v", err)
	}
	if _, err := ParseDate("2026-04-01"); err != nil {
		t.Errorf("ParseDate(bare date) error = %v", err)
	}
	if _, err := ParseDate("next week"); err == nil {
		t.Error("ParseDate(garbage) = nil, want error")
	}
}
