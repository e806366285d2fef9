package project

import "time"

// File is the metadata of an attachment. The bytes live in an external
// content store keyed by StoredName; the project tracks metadata only.
type File struct {
	ID          string
	Name        string
	StoredName  string
	ContentType string
	Size        int64
	UploadedBy  string
	UploadedAt  time.Time
}
