package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/reqindex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "reqindex.yaml")
	content := "source:\n  kind: local\n  path: " + filepath.Join(dir, "data") + "\n  key: records.json\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v
}

func TestCLI(t *testing.T) {
	cfg := writeConfig(t, "max_related: 3\n")

	_, err := execute(t, "--config", cfg, "seed")
	require.NoError(t, err)

	t.Run("stats", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "stats")
		require.NoError(t, err)
		st := decode[model.Stats](t, out)
		assert.Equal(t, 10, st.Total)
		assert.True(t, st.Consistent())
		assert.Equal(t, 3, st.ByStatus[model.StatusSubmitted])
	})

	t.Run("get", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "get", "1")
		require.NoError(t, err)
		r := decode[model.Record](t, out)
		assert.Equal(t, "Broken streetlight on Main Road", r.Title)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := execute(t, "-c", cfg, "get", "99")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("get invalid id", func(t *testing.T) {
		_, err := execute(t, "-c", cfg, "get", "abc")
		assert.ErrorContains(t, err, "invalid record id")
	})

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "list")
		require.NoError(t, err)
		recs := decode[[]model.Record](t, out)
		require.Len(t, recs, 10)
		for i := 1; i < len(recs); i++ {
			assert.Less(t, recs[i-1].ID, recs[i].ID)
		}
	})

	t.Run("list by priority", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "list", "--by-priority")
		require.NoError(t, err)
		recs := decode[[]model.Record](t, out)
		require.Len(t, recs, 10)
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].Priority, recs[i].Priority)
		}
	})

	t.Run("list status", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "list", "--status", "submitted")
		require.NoError(t, err)
		recs := decode[[]model.Record](t, out)
		require.Len(t, recs, 3)
		for _, r := range recs {
			assert.Equal(t, model.StatusSubmitted, r.Status)
		}
	})

	t.Run("list top", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "list", "--top")
		require.NoError(t, err)
		assert.Equal(t, model.PriorityCritical, decode[model.Record](t, out).Priority)
	})

	t.Run("related uses configured limit", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "related", "1")
		require.NoError(t, err)
		recs := decode[[]model.Record](t, out)
		require.Len(t, recs, 3)
		assert.Equal(t, model.ID(8), recs[0].ID)
	})

	t.Run("related limit flag", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "related", "1", "-n", "1")
		require.NoError(t, err)
		assert.Len(t, decode[[]model.Record](t, out), 1)
	})

	t.Run("edges", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "edges", "1")
		require.NoError(t, err)
		edges := decode[[]model.Edge](t, out)
		require.NotEmpty(t, edges)
		for _, e := range edges {
			assert.Equal(t, model.ID(1), e.From)
		}
	})

	t.Run("mst", func(t *testing.T) {
		out, err := execute(t, "-c", cfg, "mst")
		require.NoError(t, err)
		edges := decode[[]model.Edge](t, out)
		assert.NotEmpty(t, edges)
		assert.Less(t, len(edges), 10)
	})

	t.Run("traverse", func(t *testing.T) {
		for _, args := range [][]string{{"traverse", "1"}, {"traverse", "1", "--dfs"}} {
			out, err := execute(t, append([]string{"-c", cfg}, args...)...)
			require.NoError(t, err)
			recs := decode[[]model.Record](t, out)
			require.NotEmpty(t, recs)
			assert.Equal(t, model.ID(1), recs[0].ID)
		}
	})
}

func TestCLI_CompressedSnapshot(t *testing.T) {
	cfg := writeConfig(t, "")
	t.Setenv("REQINDEX_SOURCE_COMPRESSION", "zstd")

	_, err := execute(t, "-c", cfg, "seed")
	require.NoError(t, err)

	out, err := execute(t, "-c", cfg, "stats")
	require.NoError(t, err)
	assert.Equal(t, 10, decode[model.Stats](t, out).Total)
}

func TestCLI_MissingSnapshot(t *testing.T) {
	cfg := writeConfig(t, "")
	_, err := execute(t, "-c", cfg, "stats")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLI_InvalidLogLevel(t *testing.T) {
	cfg := writeConfig(t, "")
	_, err := execute(t, "-c", cfg, "--log-level", "loud", "stats")
	assert.Error(t, err)
}

func TestCLI_WatchRequiresLocalSource(t *testing.T) {
	cfg := writeConfig(t, "")
	t.Setenv("REQINDEX_SOURCE_KIND", "minio")
	t.Setenv("REQINDEX_SOURCE_BUCKET", "b")
	t.Setenv("REQINDEX_SOURCE_ENDPOINT", "localhost:9000")

	_, err := execute(t, "-c", cfg, "watch")
	assert.ErrorContains(t, err, "local source")
}
