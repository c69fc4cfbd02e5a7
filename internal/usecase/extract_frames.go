package usecase

import (
	"context"
	"os"
	"path/filepath"

	"framegrab/internal/domain/entity"
	"framegrab/internal/domain/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExtractFrames orchestrates one job: download the video, extract frames,
// optionally archive them, then drop the intermediate video unless the
// user asked to keep it. The steps run strictly in sequence; there is no
// retry path.
type ExtractFrames struct {
	downloader port.VideoDownloader
	extractor  port.FrameExtractor
	archiver   port.Archiver
	logger     *zap.Logger
	tempDir    string
}

type ExtractFramesConfig struct {
	// TempDir hosts the per-run scratch directory for the intermediate
	// video. Defaults to os.TempDir().
	TempDir string
}

type Result struct {
	FrameCount    int
	CountKnown    bool
	OutDir        string
	VideoPath     string // set only when the video was kept
	ArchivePath   string
	VideoDuration float64
}

func NewExtractFrames(
	downloader port.VideoDownloader,
	extractor port.FrameExtractor,
	archiver port.Archiver,
	logger *zap.Logger,
	cfg ExtractFramesConfig,
) *ExtractFrames {
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &ExtractFrames{
		downloader: downloader,
		extractor:  extractor,
		archiver:   archiver,
		logger:     logger,
		tempDir:    tempDir,
	}
}

func (uc *ExtractFrames) Execute(ctx context.Context, job *entity.ExtractionJob) (*Result, error) {
	log := uc.logger.With(zap.String("url", job.URL))

	videoPath := job.VideoPath
	if job.KeepVideo {
		if dir := filepath.Dir(videoPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, &IOError{Op: "create video directory", Err: err}
			}
		}
	} else {
		scratch := filepath.Join(uc.tempDir, "framegrab-"+uuid.NewString())
		if err := os.MkdirAll(scratch, 0o755); err != nil {
			return nil, &IOError{Op: "create scratch directory", Err: err}
		}
		videoPath = filepath.Join(scratch, "video.mp4")
		defer func() {
			// The video is only an intermediate; a failed removal must not
			// fail the job once the frames exist.
			if err := os.RemoveAll(scratch); err != nil {
				log.Warn("could not remove intermediate video", zap.Error(err))
			}
		}()
	}

	log.Info("downloading video", zap.String("video_path", videoPath))
	if err := uc.downloader.Download(ctx, job.URL, videoPath); err != nil {
		log.Error("download failed", zap.Error(err))
		return nil, stepFailure(ctx, err, func(err error) error { return &DownloadError{Err: err} })
	}

	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		return nil, &IOError{Op: "create output directory", Err: err}
	}

	log.Info("extracting frames",
		zap.String("out_dir", job.OutDir),
		zap.Float64("fps", job.FPS),
	)
	res, err := uc.extractor.ExtractFrames(ctx, port.ExtractionSpec{
		VideoPath: videoPath,
		OutputDir: job.OutDir,
		Pattern:   job.Pattern,
		FPS:       job.FPS,
		Scale:     job.Scale,
		Start:     job.Start,
		Duration:  job.Duration,
	})
	if err != nil {
		log.Error("frame extraction failed", zap.Error(err))
		return nil, stepFailure(ctx, err, func(err error) error { return &ExtractError{Err: err} })
	}

	if job.ArchivePath != "" {
		log.Info("archiving frames", zap.String("archive", job.ArchivePath))
		if err := uc.archiver.Archive(ctx, res.FramePaths, job.ArchivePath); err != nil {
			return nil, stepFailure(ctx, err, func(err error) error {
				return &IOError{Op: "archive frames", Err: err}
			})
		}
	}

	out := &Result{
		FrameCount:    res.FrameCount,
		CountKnown:    res.CountKnown,
		OutDir:        job.OutDir,
		ArchivePath:   job.ArchivePath,
		VideoDuration: res.VideoDuration,
	}
	if job.KeepVideo {
		out.VideoPath = job.VideoPath
	}

	log.Info("job completed",
		zap.Int("frame_count", res.FrameCount),
		zap.Float64("video_duration", res.VideoDuration),
	)
	return out, nil
}
