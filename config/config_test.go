package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeDefaults(t *testing.T) {
	rt, err := LoadRuntime()
	require.NoError(t, err)

	assert.Equal(t, 8, rt.SeedLen)
	assert.Equal(t, 3, rt.BatchChars)
	assert.Equal(t, int64(1024), rt.CheckpointEvery)
	assert.Equal(t, "zstd", rt.Compression)
	assert.Equal(t, "info", rt.LogLevel)
}

func TestLoadRuntimeEnv(t *testing.T) {
	t.Setenv("SEEDFORGE_WORKERS", "6")
	t.Setenv("SEEDFORGE_SEED_LEN", "5")
	t.Setenv("SEEDFORGE_BATCH_CHARS", "2")
	t.Setenv("SEEDFORGE_COMPRESSION", "lz4")
	t.Setenv("SEEDFORGE_MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("SEEDFORGE_MINIO_BUCKET", "seeds")

	rt, err := LoadRuntime()
	require.NoError(t, err)
	assert.Equal(t, 6, rt.Workers)
	assert.Equal(t, 5, rt.SeedLen)
	assert.Equal(t, 2, rt.BatchChars)
	assert.Equal(t, "lz4", rt.Compression)
	assert.Equal(t, "minio.local:9000", rt.MinioEndpoint)
	assert.Equal(t, "seeds", rt.MinioBucket)
}

func TestRuntimeValidate(t *testing.T) {
	valid := Runtime{SeedLen: 8, BatchChars: 3, Compression: "zstd"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Runtime)
	}{
		{name: "seed length zero", mutate: func(rt *Runtime) { rt.SeedLen = 0 }},
		{name: "seed length too long", mutate: func(rt *Runtime) { rt.SeedLen = 9 }},
		{name: "batch chars zero", mutate: func(rt *Runtime) { rt.BatchChars = 0 }},
		{name: "batch chars beyond seed", mutate: func(rt *Runtime) { rt.SeedLen = 3; rt.BatchChars = 4 }},
		{name: "unknown compression", mutate: func(rt *Runtime) { rt.Compression = "brotli" }},
		{name: "minio without bucket", mutate: func(rt *Runtime) { rt.MinioEndpoint = "minio:9000" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := valid
			tt.mutate(&rt)
			assert.Error(t, rt.Validate())
		})
	}
}
