package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/ports"
)

const (
	runDataFile       = "run_data.json"
	imageCopyBaseName = "original_image"
)

// FileStore persists run records to a date-partitioned directory tree:
// <root>/<YYYY-MM-DD>/<run_id>/ holding the serialized record and a
// verbatim copy of the source image. The tree is append-only; partition
// creation is idempotent and a duplicate run_id silently overwrites.
type FileStore struct {
	root string
}

var _ ports.RunStore = (*FileStore)(nil)

// NewFileStore roots the run tree at the given directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// SaveRun writes the run record and image copy. Failures carry the
// ErrPersistence kind. The image copy is skipped silently if the source
// file no longer exists at write time.
func (s *FileStore) SaveRun(ctx context.Context, run domain.ProcessingRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runDir := filepath.Join(s.root, run.PartitionKey(), run.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("%w: create run directory: %v", domain.ErrPersistence, err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal run record: %v", domain.ErrPersistence, err)
	}
	if err := os.WriteFile(filepath.Join(runDir, runDataFile), data, 0o644); err != nil {
		return fmt.Errorf("%w: write run record: %v", domain.ErrPersistence, err)
	}

	if err := s.copyImage(run, runDir); err != nil {
		return err
	}

	return nil
}

func (s *FileStore) copyImage(run domain.ProcessingRun, runDir string) error {
	src, err := os.Open(run.InputImagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: open source image: %v", domain.ErrPersistence, err)
	}
	defer src.Close()

	name := imageCopyBaseName + filepath.Ext(run.InputImagePath)
	dst, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return fmt.Errorf("%w: create image copy: %v", domain.ErrPersistence, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("%w: copy image: %v", domain.ErrPersistence, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("%w: close image copy: %v", domain.ErrPersistence, err)
	}

	return nil
}
