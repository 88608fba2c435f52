package checkpoint

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/seedforge/blobstore"
	"github.com/hupe1980/seedforge/codec"
)

// envelopeMagic marks a checkpoint blob. The envelope itself is plain JSON
// so the codec and compression names can be read before either is selected.
const envelopeMagic = "sfcp"

// envelopeVersion is bumped on incompatible envelope changes.
const envelopeVersion = 1

type envelope struct {
	Magic       string      `json:"magic"`
	Version     int         `json:"version"`
	Codec       string      `json:"codec"`
	Compression Compression `json:"compression"`
	Payload     []byte      `json:"payload"`
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCodec overrides the payload codec.
func WithCodec(c codec.Codec) ManagerOption {
	return func(m *Manager) { m.codec = c }
}

// WithCompression overrides the payload compression.
func WithCompression(c Compression) ManagerOption {
	return func(m *Manager) { m.compression = c }
}

// WithPrefix overrides the blob name prefix (default "checkpoints").
func WithPrefix(prefix string) ManagerOption {
	return func(m *Manager) { m.prefix = prefix }
}

// Manager writes and reads checkpoints through a blob store. One blob per
// run, overwritten in place; the store's atomic Put guarantees a reader
// never sees a torn checkpoint.
type Manager struct {
	store       blobstore.Store
	codec       codec.Codec
	compression Compression
	prefix      string
}

// NewManager creates a Manager over the given store.
func NewManager(store blobstore.Store, optFns ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		codec:       codec.Default,
		compression: CompressionZstd,
		prefix:      "checkpoints",
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

func (m *Manager) blobName(runID uuid.UUID) string {
	return path.Join(m.prefix, runID.String()+".ckpt")
}

// Save persists the checkpoint, stamping CreatedAt.
func (m *Manager) Save(ctx context.Context, cp *Checkpoint) error {
	cp.CreatedAt = time.Now().UTC()

	payload, err := m.codec.Marshal(cp)
	if err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}
	payload, err = compress(m.compression, payload)
	if err != nil {
		return err
	}

	env := envelope{
		Magic:       envelopeMagic,
		Version:     envelopeVersion,
		Codec:       m.codec.Name(),
		Compression: m.compression,
		Payload:     payload,
	}
	data, err := (codec.JSON{}).Marshal(env)
	if err != nil {
		return fmt.Errorf("checkpoint: encode envelope: %w", err)
	}
	return m.store.Put(ctx, m.blobName(cp.RunID), data)
}

// Load reads the checkpoint of a run. Returns blobstore.ErrNotFound when the
// run has no checkpoint.
func (m *Manager) Load(ctx context.Context, runID uuid.UUID) (*Checkpoint, error) {
	data, err := m.store.Get(ctx, m.blobName(runID))
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := (codec.JSON{}).Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("checkpoint: decode envelope: %w", err)
	}
	if env.Magic != envelopeMagic {
		return nil, ErrBadMagic
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("checkpoint: unsupported version %d", env.Version)
	}

	c, ok := codec.ByName(env.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, env.Codec)
	}
	payload, err := decompress(env.Compression, env.Payload)
	if err != nil {
		return nil, err
	}

	var cp Checkpoint
	if err := c.Unmarshal(payload, &cp); err != nil {
		return nil, fmt.Errorf("checkpoint: decode: %w", err)
	}
	return &cp, nil
}

// Delete removes the checkpoint of a run, typically after completion.
func (m *Manager) Delete(ctx context.Context, runID uuid.UUID) error {
	return m.store.Delete(ctx, m.blobName(runID))
}

// List returns the run IDs that have a stored checkpoint.
func (m *Manager) List(ctx context.Context) ([]uuid.UUID, error) {
	names, err := m.store.List(ctx, m.prefix)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, name := range names {
		base := path.Base(name)
		if ext := path.Ext(base); ext != ".ckpt" {
			continue
		}
		id, err := uuid.Parse(base[:len(base)-len(".ckpt")])
		if err != nil {
			continue // foreign blob under our prefix
		}
		ids = append(ids, id)
	}
	return ids, nil
}
