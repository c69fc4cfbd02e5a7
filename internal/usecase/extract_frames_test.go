package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"framegrab/internal/domain/entity"
	"framegrab/internal/domain/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDownloader struct {
	calls []string // destination paths, in order
	seq   *[]string
	err   error
}

func (f *fakeDownloader) Download(ctx context.Context, url, destPath string) error {
	f.calls = append(f.calls, destPath)
	*f.seq = append(*f.seq, "download")
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, []byte("video"), 0o644)
}

type fakeExtractor struct {
	specs  []port.ExtractionSpec
	seq    *[]string
	err    error
	result *port.ExtractionResult
}

func (f *fakeExtractor) ExtractFrames(ctx context.Context, spec port.ExtractionSpec) (*port.ExtractionResult, error) {
	f.specs = append(f.specs, spec)
	*f.seq = append(*f.seq, "extract")
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &port.ExtractionResult{FrameCount: 3, CountKnown: true, VideoDuration: 12.5}, nil
}

type fakeArchiver struct {
	paths  []string
	target string
	err    error
}

func (f *fakeArchiver) Archive(ctx context.Context, filePaths []string, outputPath string) error {
	f.paths = filePaths
	f.target = outputPath
	return f.err
}

type fixture struct {
	uc         *ExtractFrames
	downloader *fakeDownloader
	extractor  *fakeExtractor
	archiver   *fakeArchiver
	seq        []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{}
	fx.downloader = &fakeDownloader{seq: &fx.seq}
	fx.extractor = &fakeExtractor{seq: &fx.seq}
	fx.archiver = &fakeArchiver{}
	fx.uc = NewExtractFrames(fx.downloader, fx.extractor, fx.archiver, zap.NewNop(),
		ExtractFramesConfig{TempDir: t.TempDir()})
	return fx
}

func testJob(t *testing.T) *entity.ExtractionJob {
	t.Helper()
	job, err := entity.NewExtractionJob(entity.JobParams{
		URL:       "https://x/VIDEO",
		OutDir:    filepath.Join(t.TempDir(), "frames"),
		FPS:       10,
		Pattern:   "frame_%06d.png",
		VideoPath: "video.mp4",
	})
	require.NoError(t, err)
	return job
}

func TestExecuteDownloadsBeforeExtracting(t *testing.T) {
	fx := newFixture(t)
	job := testJob(t)

	res, err := fx.uc.Execute(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, []string{"download", "extract"}, fx.seq)
	require.Len(t, fx.downloader.calls, 1)
	require.Len(t, fx.extractor.specs, 1)

	spec := fx.extractor.specs[0]
	assert.Equal(t, fx.downloader.calls[0], spec.VideoPath)
	assert.Equal(t, job.OutDir, spec.OutputDir)
	assert.Equal(t, job.Pattern, spec.Pattern)
	assert.Equal(t, 10.0, spec.FPS)

	assert.Equal(t, 3, res.FrameCount)
	assert.True(t, res.CountKnown)
	assert.Equal(t, 12.5, res.VideoDuration)
	assert.Empty(t, res.VideoPath)
}

func TestExecuteDownloadFailureSkipsExtraction(t *testing.T) {
	fx := newFixture(t)
	fx.downloader.err = errors.New("exit status 1: network error")
	job := testJob(t)

	res, err := fx.uc.Execute(context.Background(), job)
	require.Nil(t, res)

	var derr *DownloadError
	require.ErrorAs(t, err, &derr)
	assert.ErrorContains(t, err, "network error")

	assert.Empty(t, fx.extractor.specs, "transcoder must not run after a failed download")
	assert.NoDirExists(t, job.OutDir, "output directory must not be created after a failed download")
}

func TestExecuteExtractionFailure(t *testing.T) {
	fx := newFixture(t)
	fx.extractor.err = errors.New("exit status 1: invalid filter")
	job := testJob(t)

	_, err := fx.uc.Execute(context.Background(), job)

	var eerr *ExtractError
	require.ErrorAs(t, err, &eerr)
	assert.ErrorContains(t, err, "invalid filter")
}

func TestExecuteRemovesIntermediateVideo(t *testing.T) {
	fx := newFixture(t)
	job := testJob(t)

	_, err := fx.uc.Execute(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, fx.downloader.calls, 1)
	assert.NoFileExists(t, fx.downloader.calls[0])
}

func TestExecuteKeepsVideoWhenRequested(t *testing.T) {
	fx := newFixture(t)
	videoPath := filepath.Join(t.TempDir(), "kept", "clip.mp4")
	job, err := entity.NewExtractionJob(entity.JobParams{
		URL:       "https://x/VIDEO",
		OutDir:    filepath.Join(t.TempDir(), "frames"),
		FPS:       10,
		Pattern:   "frame_%06d.png",
		KeepVideo: true,
		VideoPath: videoPath,
	})
	require.NoError(t, err)

	res, err := fx.uc.Execute(context.Background(), job)
	require.NoError(t, err)

	assert.FileExists(t, videoPath)
	assert.Equal(t, videoPath, res.VideoPath)
	require.Len(t, fx.downloader.calls, 1)
	assert.Equal(t, videoPath, fx.downloader.calls[0])
}

func TestExecuteIdempotentOutputDirectory(t *testing.T) {
	fx := newFixture(t)
	job := testJob(t)

	_, err := fx.uc.Execute(context.Background(), job)
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), job)
	require.NoError(t, err, "an existing output directory must not fail the job")
}

func TestExecuteCancelledDuringDownload(t *testing.T) {
	fx := newFixture(t)
	fx.downloader.err = context.Canceled
	job := testJob(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fx.uc.Execute(ctx, job)

	var cerr *CancelledError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, fx.extractor.specs)
}

func TestExecuteArchivesFrames(t *testing.T) {
	fx := newFixture(t)
	fx.extractor.result = &port.ExtractionResult{
		FramePaths: []string{"frames/frame_000001.png", "frames/frame_000002.png"},
		FrameCount: 2,
		CountKnown: true,
	}
	archivePath := filepath.Join(t.TempDir(), "frames.zip")

	job, err := entity.NewExtractionJob(entity.JobParams{
		URL:         "https://x/VIDEO",
		OutDir:      filepath.Join(t.TempDir(), "frames"),
		FPS:         10,
		Pattern:     "frame_%06d.png",
		VideoPath:   "video.mp4",
		ArchivePath: archivePath,
	})
	require.NoError(t, err)

	res, err := fx.uc.Execute(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, fx.extractor.result.FramePaths, fx.archiver.paths)
	assert.Equal(t, archivePath, fx.archiver.target)
	assert.Equal(t, archivePath, res.ArchivePath)
}

func TestExecuteArchiveFailure(t *testing.T) {
	fx := newFixture(t)
	fx.archiver.err = errors.New("disk full")

	job, err := entity.NewExtractionJob(entity.JobParams{
		URL:         "https://x/VIDEO",
		OutDir:      filepath.Join(t.TempDir(), "frames"),
		FPS:         10,
		Pattern:     "frame_%06d.png",
		VideoPath:   "video.mp4",
		ArchivePath: filepath.Join(t.TempDir(), "frames.zip"),
	})
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), job)

	var ioerr *IOError
	require.ErrorAs(t, err, &ioerr)
	assert.ErrorContains(t, err, "disk full")
}
