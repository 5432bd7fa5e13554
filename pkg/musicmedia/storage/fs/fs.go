package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// Backend is a filesystem implementation of the musicmedia.BlobStore
// interface. Each blob is a file named by its ID with a JSON sidecar holding
// the original filename and the advisory envelope.
type Backend struct {
	baseDir string
}

type sidecar struct {
	Filename string                  `json:"filename"`
	Envelope musicmedia.BlobEnvelope `json:"envelope"`
}

// New creates a new filesystem blob store
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

func (b *Backend) blobPath(blobID string) string {
	return filepath.Join(b.baseDir, blobID)
}

func (b *Backend) sidecarPath(blobID string) string {
	return filepath.Join(b.baseDir, blobID+".meta.json")
}

// Upload streams content to a new file under the base directory
func (b *Backend) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	blobID := uuid.NewString()

	file, err := os.Create(b.blobPath(blobID))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create blob file: %w", err)
	}

	size, err := io.Copy(file, reader)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(b.blobPath(blobID))
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}

	if err := b.writeSidecar(blobID, sidecar{Filename: filename, Envelope: envelope}); err != nil {
		os.Remove(b.blobPath(blobID))
		return "", 0, err
	}

	return blobID, size, nil
}

func (b *Backend) writeSidecar(blobID string, sc sidecar) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if err := os.WriteFile(b.sidecarPath(blobID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	return nil
}

// Download opens the blob file for reading
func (b *Backend) Download(ctx context.Context, blobID string) (io.ReadCloser, error) {
	file, err := os.Open(b.blobPath(blobID))
	if os.IsNotExist(err) {
		return nil, musicmedia.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return file, nil
}

// Exists reports whether a blob file exists
func (b *Backend) Exists(ctx context.Context, blobID string) (bool, error) {
	_, err := os.Stat(b.blobPath(blobID))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
	return true, nil
}

// Delete removes the blob file and its sidecar
func (b *Backend) Delete(ctx context.Context, blobID string) (bool, error) {
	err := os.Remove(b.blobPath(blobID))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to delete blob: %w", err)
	}

	// Sidecar removal is best-effort; the blob itself is gone.
	os.Remove(b.sidecarPath(blobID))
	return true, nil
}

// UpdateEnvelope rewrites the sidecar with the new envelope
func (b *Backend) UpdateEnvelope(ctx context.Context, blobID string, envelope musicmedia.BlobEnvelope) error {
	if exists, err := b.Exists(ctx, blobID); err != nil {
		return err
	} else if !exists {
		return musicmedia.ErrBlobNotFound
	}

	sc := sidecar{Envelope: envelope}
	if data, err := os.ReadFile(b.sidecarPath(blobID)); err == nil {
		var existing sidecar
		if json.Unmarshal(data, &existing) == nil {
			sc.Filename = existing.Filename
		}
	}

	return b.writeSidecar(blobID, sc)
}
