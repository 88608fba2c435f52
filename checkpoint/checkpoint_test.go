package checkpoint

import (
	"context"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seedforge/blobstore"
	"github.com/hupe1980/seedforge/codec"
)

func testCheckpoint() *Checkpoint {
	return &Checkpoint{
		RunID:        uuid.MustParse("c3a9f9a0-0000-4000-8000-000000000001"),
		Fingerprint:  0xdeadbeef,
		TotalBatches: 42875,
		NextBatch:    1200,
		Completed:    1180,
	}
}

func TestManagerRoundtrip(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(string(comp), func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(blobstore.NewMemoryStore(), WithCompression(comp))

			cp := testCheckpoint()
			rb := roaring.New()
			rb.AddRange(0, 1180)
			rb.Add(1500)
			require.NoError(t, cp.SetExecuted(rb))

			require.NoError(t, m.Save(ctx, cp))
			assert.False(t, cp.CreatedAt.IsZero())

			got, err := m.Load(ctx, cp.RunID)
			require.NoError(t, err)
			assert.Equal(t, cp.RunID, got.RunID)
			assert.Equal(t, cp.Fingerprint, got.Fingerprint)
			assert.Equal(t, cp.TotalBatches, got.TotalBatches)
			assert.Equal(t, cp.NextBatch, got.NextBatch)
			assert.Equal(t, cp.Completed, got.Completed)

			set, err := got.ExecutedSet()
			require.NoError(t, err)
			assert.True(t, set.Equals(rb))
		})
	}
}

func TestManagerCodecs(t *testing.T) {
	// A checkpoint written with one codec loads through the envelope's codec
	// name, regardless of the loading manager's own configuration.
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	writer := NewManager(store, WithCodec(codec.JSON{}))
	cp := testCheckpoint()
	require.NoError(t, writer.Save(ctx, cp))

	reader := NewManager(store, WithCodec(codec.GoJSON{}))
	got, err := reader.Load(ctx, cp.RunID)
	require.NoError(t, err)
	assert.Equal(t, cp.Fingerprint, got.Fingerprint)
}

func TestManagerLoadMissing(t *testing.T) {
	m := NewManager(blobstore.NewMemoryStore())
	_, err := m.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestManagerRejectsForeignBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := NewManager(store)

	id := uuid.New()
	name := "checkpoints/" + id.String() + ".ckpt"

	t.Run("not an envelope", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name, []byte("not json")))
		_, err := m.Load(ctx, id)
		assert.Error(t, err)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := codec.MustMarshal(codec.JSON{}, envelope{Magic: "nope", Version: 1, Codec: "json"})
		require.NoError(t, store.Put(ctx, name, data))
		_, err := m.Load(ctx, id)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("unknown codec", func(t *testing.T) {
		data := codec.MustMarshal(codec.JSON{}, envelope{Magic: envelopeMagic, Version: 1, Codec: "cbor"})
		require.NoError(t, store.Put(ctx, name, data))
		_, err := m.Load(ctx, id)
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("unknown compression", func(t *testing.T) {
		data := codec.MustMarshal(codec.JSON{}, envelope{
			Magic: envelopeMagic, Version: 1, Codec: "json", Compression: "brotli",
		})
		require.NoError(t, store.Put(ctx, name, data))
		_, err := m.Load(ctx, id)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("future version", func(t *testing.T) {
		data := codec.MustMarshal(codec.JSON{}, envelope{Magic: envelopeMagic, Version: 99, Codec: "json"})
		require.NoError(t, store.Put(ctx, name, data))
		_, err := m.Load(ctx, id)
		assert.Error(t, err)
	})
}

func TestManagerDeleteAndList(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := NewManager(store)

	a := testCheckpoint()
	b := testCheckpoint()
	b.RunID = uuid.MustParse("c3a9f9a0-0000-4000-8000-000000000002")
	require.NoError(t, m.Save(ctx, a))
	require.NoError(t, m.Save(ctx, b))

	// A foreign blob under the prefix is ignored.
	require.NoError(t, store.Put(ctx, "checkpoints/readme.txt", []byte("x")))

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.RunID, b.RunID}, ids)

	require.NoError(t, m.Delete(ctx, a.RunID))
	ids, err = m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.RunID}, ids)

	_, err = m.Load(ctx, a.RunID)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestValidate(t *testing.T) {
	cp := testCheckpoint()

	assert.NoError(t, cp.Validate(0xdeadbeef, 42875))
	assert.ErrorIs(t, cp.Validate(0xcafebabe, 42875), ErrFilterMismatch)
	assert.ErrorIs(t, cp.Validate(0xdeadbeef, 42874), ErrProviderMismatch)
}

func TestExecutedSetEmpty(t *testing.T) {
	cp := &Checkpoint{}
	set, err := cp.ExecutedSet()
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())

	require.NoError(t, cp.SetExecuted(roaring.New()))
	assert.Nil(t, cp.Executed)

	require.NoError(t, cp.SetExecuted(nil))
	assert.Nil(t, cp.Executed)
}

func TestCompressRoundtrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, twice over, the quick brown fox")

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			packed, err := compress(c, data)
			require.NoError(t, err)
			out, err := decompress(c, packed)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}

	_, err := compress("brotli", data)
	assert.ErrorIs(t, err, ErrUnknownCompression)
	_, err = decompress("brotli", data)
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
