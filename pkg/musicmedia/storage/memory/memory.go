package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/tunehub/musician-media/pkg/musicmedia"
)

type blob struct {
	filename string
	data     []byte
	envelope musicmedia.BlobEnvelope
}

// Backend is an in-memory implementation of the musicmedia.BlobStore interface
type Backend struct {
	mu    sync.RWMutex
	blobs map[string]*blob
}

// New creates a new in-memory blob store
func New() *Backend {
	return &Backend{
		blobs: make(map[string]*blob),
	}
}

// Upload stores content in memory under a fresh blob ID
func (b *Backend) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	blobID := uuid.NewString()
	b.blobs[blobID] = &blob{
		filename: filename,
		data:     data,
		envelope: envelope,
	}

	return blobID, int64(len(data)), nil
}

// Download returns the stored content
func (b *Backend) Download(ctx context.Context, blobID string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, exists := b.blobs[blobID]
	if !exists {
		return nil, musicmedia.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(entry.data)), nil
}

// Exists reports whether a blob exists
func (b *Backend) Exists(ctx context.Context, blobID string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.blobs[blobID]
	return exists, nil
}

// Delete removes the blob
func (b *Backend) Delete(ctx context.Context, blobID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[blobID]; !exists {
		return false, nil
	}

	delete(b.blobs, blobID)
	return true, nil
}

// UpdateEnvelope rewrites the advisory envelope
func (b *Backend) UpdateEnvelope(ctx context.Context, blobID string, envelope musicmedia.BlobEnvelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.blobs[blobID]
	if !exists {
		return musicmedia.ErrBlobNotFound
	}

	entry.envelope = envelope
	return nil
}

// Envelope returns the stored envelope, for tests.
func (b *Backend) Envelope(blobID string) (musicmedia.BlobEnvelope, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, exists := b.blobs[blobID]
	if !exists {
		return musicmedia.BlobEnvelope{}, false
	}
	return entry.envelope, true
}
