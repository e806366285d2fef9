package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain/project"
)

// Person carries the resolved name and email of a referenced user for export.
// The application layer populates it from the user directory.
type Person struct {
	ID    string
	Name  string
	Email string
}

// Document element order is the canonical shape; both export and re-import
// rely on it. Absent optional values render as empty text content, except
// student/teacher, which render as empty elements with no children.
type xmlProject struct {
	XMLName     xml.Name     `xml:"project"`
	ID          string       `xml:"id"`
	Title       string       `xml:"title"`
	Description string       `xml:"description"`
	Status      string       `xml:"status"`
	Student     xmlPersonRef `xml:"student"`
	Teacher     xmlPersonRef `xml:"teacher"`
	Tasks       xmlTasks     `xml:"tasks"`
	Grade       string       `xml:"grade"`
	Feedback    string       `xml:"feedback"`
	SubmittedAt string       `xml:"submittedAt"`
	CreatedAt   string       `xml:"createdAt"`
	UpdatedAt   string       `xml:"updatedAt"`
}

// xmlPersonRef uses pointer children so an unset reference marshals as an
// element with no children at all.
type xmlPersonRef struct {
	ID    *string `xml:"id"`
	Name  *string `xml:"name"`
	Email *string `xml:"email"`
}

type xmlTasks struct {
	Task []xmlTask `xml:"task"`
}

type xmlTask struct {
	ID          string `xml:"id"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Deadline    string `xml:"deadline"`
	Progress    int    `xml:"progress"`
	Status      string `xml:"status"`
}

// Encode renders a fully-populated project as the canonical XML document,
// declared UTF-8 version 1.0. Dates render as ISO-8601 text. The student and
// teacher arguments carry resolved names; pass nil when unassigned.
func Encode(p *project.Project, student, teacher *Person) ([]byte, error) {
	doc := xmlProject{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status.String(),
		Student:     personRef(student),
		Teacher:     personRef(teacher),
		Feedback:    p.Feedback,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if p.Grade != nil {
		doc.Grade = strconv.Itoa(*p.Grade)
	}
	if p.SubmittedAt != nil {
		doc.SubmittedAt = p.SubmittedAt.UTC().Format(time.RFC3339)
	}

	doc.Tasks.Task = make([]xmlTask, len(p.Tasks))
	for i, t := range p.Tasks {
		xt := xmlTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Progress:    t.Progress,
			Status:      t.Status.String(),
		}
		if t.Deadline != nil {
			xt.Deadline = t.Deadline.UTC().Format(time.RFC3339)
		}
		doc.Tasks.Task[i] = xt
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", p.ID, err)
	}

	return append([]byte(xml.Header), body...), nil
}

func personRef(p *Person) xmlPersonRef {
	if p == nil {
		return xmlPersonRef{}
	}
	return xmlPersonRef{ID: &p.ID, Name: &p.Name, Email: &p.Email}
}
