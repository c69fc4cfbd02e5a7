package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"framegrab/internal/domain/entity"
	"framegrab/internal/infra/config"
	"framegrab/internal/infra/ffmpeg"
	"framegrab/internal/infra/ytdlp"
	"framegrab/internal/usecase"
	"framegrab/pkg/logger"
	"go.uber.org/zap"
)

// Exit codes, one per failure class.
const (
	exitOK         = 0
	exitValidation = 1
	exitDownload   = 2
	exitExtract    = 3
	exitIO         = 4
	exitCancelled  = 130
)

// Execute runs the CLI end to end and returns the process exit code.
func Execute(version string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "framegrab: load config:", err)
		return exitValidation
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "framegrab:", err)
		return exitValidation
	}
	defer log.Sync()

	// An interrupt cancels the context, which terminates whichever child
	// process is running.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewCommand(version, cfg, newRunner(cfg, log))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "framegrab:", err)
		return exitCode(err)
	}
	return exitOK
}

// newRunner wires the real yt-dlp and ffmpeg adapters behind the ports.
func newRunner(cfg *config.Config, log *zap.Logger) Runner {
	return func(ctx context.Context, job *entity.ExtractionJob, fetchYtDlp bool) (*usecase.Result, error) {
		ffmpegBin, err := exec.LookPath(cfg.FFmpegBin)
		if err != nil {
			return nil, &usecase.ExtractError{
				Err: fmt.Errorf("%s not found on PATH; install ffmpeg first", cfg.FFmpegBin),
			}
		}

		ytdlpBin, err := ytdlp.Resolve(ctx, cfg.YtDlpBin, fetchYtDlp, log)
		if err != nil {
			return nil, &usecase.DownloadError{Err: err}
		}

		uc := usecase.NewExtractFrames(
			ytdlp.NewDownloader(ytdlpBin, log),
			ffmpeg.NewExtractor(ffmpegBin, cfg.FFprobeBin, log),
			ffmpeg.NewArchiver(),
			log,
			usecase.ExtractFramesConfig{},
		)
		return uc.Execute(ctx, job)
	}
}

func exitCode(err error) int {
	var (
		cancelled  *usecase.CancelledError
		download   *usecase.DownloadError
		extract    *usecase.ExtractError
		ioFailure  *usecase.IOError
		validation *entity.ValidationError
	)
	switch {
	case errors.As(err, &cancelled):
		return exitCancelled
	case errors.As(err, &download):
		return exitDownload
	case errors.As(err, &extract):
		return exitExtract
	case errors.As(err, &ioFailure):
		return exitIO
	case errors.As(err, &validation):
		return exitValidation
	default:
		// Flag-parse failures and anything else user-shaped.
		return exitValidation
	}
}
