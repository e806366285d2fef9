// Package files stores attachment bytes on local disk, keyed by their stored
// name. The project document keeps the metadata; this adapter only moves
// bytes.
package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// Compile-time interface check.
var _ ports.FileStore = (*DiskStore)(nil)

// DiskStore keeps each attachment as one file under a root directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Put writes the attachment bytes. Stored names are opaque ids generated by
// the application layer; anything resembling a path is rejected.
func (d *DiskStore) Put(_ context.Context, storedName string, data []byte) error {
	path, err := d.path(storedName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing attachment %s: %w", storedName, err)
	}
	return nil
}

// Get returns the attachment bytes or domain.ErrNotFound.
func (d *DiskStore) Get(_ context.Context, storedName string) ([]byte, error) {
	path, err := d.path(storedName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("attachment %s: %w", storedName, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading attachment %s: %w", storedName, err)
	}
	return data, nil
}

// Delete removes the attachment. Deleting an absent attachment is not an
// error; release is best-effort during project deletion.
func (d *DiskStore) Delete(_ context.Context, storedName string) error {
	path, err := d.path(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing attachment %s: %w", storedName, err)
	}
	return nil
}

func (d *DiskStore) path(storedName string) (string, error) {
	if storedName == "" || strings.ContainsAny(storedName, `/\`) || strings.Contains(storedName, "..") {
		return "", fmt.Errorf("invalid stored name %q", storedName)
	}
	return filepath.Join(d.root, storedName), nil
}
