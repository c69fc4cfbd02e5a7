package ffmpeg

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveBundlesFrames(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"frame_000001.png", "frame_000002.png"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("png-data-"+name), 0o644))
		paths = append(paths, p)
	}

	out := filepath.Join(t.TempDir(), "bundle", "frames.zip")
	require.NoError(t, NewArchiver().Archive(context.Background(), paths, out))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"frame_000001.png", "frame_000002.png"}, names)
}

func TestArchiveMissingFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.zip")
	err := NewArchiver().Archive(context.Background(), []string{"does-not-exist.png"}, out)
	require.Error(t, err)
}

func TestArchiveCancelled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "frame_000001.png")
	require.NoError(t, os.WriteFile(p, []byte("png"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewArchiver().Archive(ctx, []string{p}, filepath.Join(dir, "frames.zip"))
	assert.ErrorIs(t, err, context.Canceled)
}
