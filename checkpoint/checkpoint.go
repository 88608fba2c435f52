package checkpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
)

var (
	// ErrBadMagic is returned when the blob is not a checkpoint envelope.
	ErrBadMagic = errors.New("checkpoint: bad magic")

	// ErrUnknownCodec is returned when the envelope names a codec this
	// build does not provide.
	ErrUnknownCodec = errors.New("checkpoint: unknown codec")

	// ErrUnknownCompression is returned when the envelope names an
	// unsupported compression.
	ErrUnknownCompression = errors.New("checkpoint: unknown compression")

	// ErrFilterMismatch is returned when resuming with a filter whose
	// fingerprint differs from the one the checkpoint was written under.
	ErrFilterMismatch = errors.New("checkpoint: filter fingerprint mismatch")

	// ErrProviderMismatch is returned when resuming with a provider whose
	// batch count differs from the checkpointed run.
	ErrProviderMismatch = errors.New("checkpoint: provider shape mismatch")
)

// Checkpoint is the durable cursor of one search run.
type Checkpoint struct {
	// RunID identifies the run the checkpoint belongs to.
	RunID uuid.UUID `json:"run_id"`

	// CreatedAt is the write time of this checkpoint.
	CreatedAt time.Time `json:"created_at"`

	// Fingerprint identifies the compiled filter. Resume refuses a
	// checkpoint written under a different filter.
	Fingerprint uint32 `json:"fingerprint"`

	// TotalBatches is the provider's batch count at write time.
	TotalBatches int64 `json:"total_batches"`

	// NextBatch is the lowest batch index no worker had claimed.
	NextBatch int64 `json:"next_batch"`

	// Completed is the completed-batch count.
	Completed int64 `json:"completed"`

	// Executed is the serialized bitmap of executed batch indices. Batches
	// in the set are skipped on resume even when they lie beyond NextBatch.
	Executed []byte `json:"executed,omitempty"`
}

// ExecutedSet deserializes the executed-batch bitmap. A checkpoint without
// one yields an empty set.
func (c *Checkpoint) ExecutedSet() (*roaring.Bitmap, error) {
	rb := roaring.New()
	if len(c.Executed) == 0 {
		return rb, nil
	}
	if err := rb.UnmarshalBinary(c.Executed); err != nil {
		return nil, fmt.Errorf("checkpoint: executed set: %w", err)
	}
	return rb, nil
}

// SetExecuted serializes the executed-batch bitmap into the checkpoint.
func (c *Checkpoint) SetExecuted(rb *roaring.Bitmap) error {
	if rb == nil || rb.IsEmpty() {
		c.Executed = nil
		return nil
	}
	data, err := rb.MarshalBinary()
	if err != nil {
		return fmt.Errorf("checkpoint: executed set: %w", err)
	}
	c.Executed = data
	return nil
}

// Validate checks that the checkpoint belongs to a run with the given filter
// fingerprint and provider batch count.
func (c *Checkpoint) Validate(fingerprint uint32, totalBatches int64) error {
	if c.Fingerprint != fingerprint {
		return fmt.Errorf("%w: checkpoint %08x, filter %08x", ErrFilterMismatch, c.Fingerprint, fingerprint)
	}
	if c.TotalBatches != totalBatches {
		return fmt.Errorf("%w: checkpoint %d batches, provider %d", ErrProviderMismatch, c.TotalBatches, totalBatches)
	}
	return nil
}
