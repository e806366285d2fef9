package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/task"
)

// Draft holds the fields a decoded document contributes to a new project.
// Identity fields (student, teacher, creator) are intentionally absent; the
// importing actor stamps ownership onto the draft. Range validation happens
// later when the draft passes through project construction.
type Draft struct {
	Title       string
	Description string
	Status      project.Status
	Tasks       []task.Task
}

// Decode structs use pointer fields where element presence matters.
type draftDoc struct {
	XMLName     xml.Name   `xml:"project"`
	Title       *string    `xml:"title"`
	Description *string    `xml:"description"`
	Status      string     `xml:"status"`
	Tasks       draftTasks `xml:"tasks"`
}

type draftTasks struct {
	Task []draftTask `xml:"task"`
}

type draftTask struct {
	Title       *string `xml:"title"`
	Description string  `xml:"description"`
	Deadline    string  `xml:"deadline"`
	Progress    string  `xml:"progress"`
	Status      string  `xml:"status"`
}

// Decode parses an exported (or hand-written) project document into a Draft.
// Required elements title and description must be present or decoding fails
// with a *domain.ParseError. Missing status defaults to draft; each task
// defaults description to empty, progress to 0, and status to pending. An
// empty <tasks/> yields an empty task sequence.
func Decode(data []byte) (*Draft, error) {
	var doc draftDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Msg: fmt.Sprintf("malformed XML: %v", err)}
	}

	if doc.Title == nil {
		return nil, &domain.ParseError{Msg: "missing required element <title>"}
	}
	if doc.Description == nil {
		return nil, &domain.ParseError{Msg: "missing required element <description>"}
	}

	draft := &Draft{
		Title:       *doc.Title,
		Description: *doc.Description,
		Status:      project.StatusDraft,
	}
	if doc.Status != "" {
		draft.Status = project.Status(doc.Status)
	}

	draft.Tasks = make([]task.Task, 0, len(doc.Tasks.Task))
	for i, dt := range doc.Tasks.Task {
		t, err := decodeTask(i, dt)
		if err != nil {
			return nil, err
		}
		draft.Tasks = append(draft.Tasks, *t)
	}

	return draft, nil
}

func decodeTask(i int, dt draftTask) (*task.Task, error) {
	if dt.Title == nil {
		return nil, &domain.ParseError{Msg: fmt.Sprintf("task %d: missing required element <title>", i)}
	}

	t := &task.Task{
		Title:       *dt.Title,
		Description: dt.Description,
		Status:      task.StatusPending,
	}
	if dt.Status != "" {
		t.Status = task.Status(dt.Status)
	}

	if dt.Progress != "" {
		progress, err := strconv.Atoi(dt.Progress)
		if err != nil {
			return nil, &domain.ParseError{Msg: fmt.Sprintf("task %d: progress %q is not an integer", i, dt.Progress)}
		}
		t.Progress = progress
	}

	if dt.Deadline != "" {
		deadline, err := parseDate(dt.Deadline)
		if err != nil {
			return nil, &domain.ParseError{Msg: fmt.Sprintf("task %d: deadline %q is not a date", i, dt.Deadline)}
		}
		t.Deadline = &deadline
	}

	return t, nil
}

// parseDate accepts full ISO-8601 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
