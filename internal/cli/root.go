package cli

import (
	"context"
	"fmt"

	"framegrab/internal/domain/entity"
	"framegrab/internal/infra/config"
	"framegrab/internal/usecase"
	"github.com/spf13/cobra"
)

// Runner executes a resolved job. Production wires the yt-dlp/ffmpeg
// adapters; tests substitute a recording stub.
type Runner func(ctx context.Context, job *entity.ExtractionJob, fetchYtDlp bool) (*usecase.Result, error)

type options struct {
	outDir      string
	fps         float64
	pattern     string
	scale       string
	start       string
	duration    string
	keepVideo   bool
	videoPath   string
	archivePath string
	fetchYtDlp  bool
}

// NewCommand builds the root command. Flag defaults come from the
// environment-derived config.
func NewCommand(version string, cfg *config.Config, run Runner) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "framegrab <url>",
		Short: "Download a video and extract it into still-image frames",
		Long: `framegrab resolves a video URL to a local file with yt-dlp, then
invokes ffmpeg to extract numbered still images at a chosen frame rate,
time range and scale.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &entity.ValidationError{Flag: "url", Reason: "exactly one video URL is required"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := entity.NewExtractionJob(entity.JobParams{
				URL:         args[0],
				OutDir:      opts.outDir,
				FPS:         opts.fps,
				Pattern:     opts.pattern,
				Scale:       opts.scale,
				Start:       opts.start,
				Duration:    opts.duration,
				KeepVideo:   opts.keepVideo,
				VideoPath:   opts.videoPath,
				ArchivePath: opts.archivePath,
			})
			if err != nil {
				return err
			}

			res, err := run(cmd.Context(), job, opts.fetchYtDlp)
			if err != nil {
				return err
			}

			if res.CountKnown {
				fmt.Fprintf(cmd.OutOrStdout(), "Done. %d frames in %s\n", res.FrameCount, res.OutDir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Done. Frames in %s\n", res.OutDir)
			}
			if res.VideoPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Video kept at %s\n", res.VideoPath)
			}
			if res.ArchivePath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Archive written to %s\n", res.ArchivePath)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.outDir, "out-dir", "o", cfg.OutDir, "output directory for frames (created if absent)")
	fl.Float64VarP(&opts.fps, "fps", "f", cfg.FPS, "frames per second to extract")
	fl.StringVar(&opts.pattern, "pattern", cfg.Pattern, "output image filename pattern")
	fl.StringVar(&opts.scale, "scale", "", "rescale frames, e.g. 1280:-1 or 720:-2 (applied after fps)")
	fl.StringVar(&opts.start, "start", "", "start offset, e.g. 00:00:05")
	fl.StringVar(&opts.duration, "duration", "", "duration, e.g. 10 or 00:00:10")
	fl.BoolVar(&opts.keepVideo, "keep-video", false, "keep the downloaded video file")
	fl.StringVar(&opts.videoPath, "video-path", cfg.VideoPath, "where to save the video with --keep-video")
	fl.StringVar(&opts.archivePath, "archive", "", "bundle the extracted frames into a zip at this path")
	fl.BoolVar(&opts.fetchYtDlp, "fetch-yt-dlp", false, "download yt-dlp if it is not on PATH")
	fl.BoolP("version", "V", false, "print version and exit")

	return cmd
}
