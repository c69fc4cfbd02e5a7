package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"framegrab/internal/domain/port"
	"go.uber.org/zap"
)

// stderrTailLimit caps how much captured tool output ends up in errors.
const stderrTailLimit = 4096

var patternVerb = regexp.MustCompile(`%0?[0-9]*d`)

// Extractor invokes ffmpeg to turn a local video into numbered still
// images, and ffprobe to report the source duration.
type Extractor struct {
	ffmpegBin  string
	ffprobeBin string
	logger     *zap.Logger
}

func NewExtractor(ffmpegBin, ffprobeBin string, logger *zap.Logger) *Extractor {
	return &Extractor{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, logger: logger}
}

func (e *Extractor) ExtractFrames(ctx context.Context, spec port.ExtractionSpec) (*port.ExtractionResult, error) {
	duration, err := e.probeDuration(ctx, spec.VideoPath)
	if err != nil {
		e.logger.Warn("could not probe video duration", zap.Error(err))
	}

	args := buildArgs(spec)
	cmd := exec.CommandContext(ctx, e.ffmpegBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderrTail(stderr.Bytes()))
	}

	result := &port.ExtractionResult{VideoDuration: duration}

	// Counting is best effort; a glob failure must not fail the job now
	// that the frames are on disk.
	glob := filepath.Join(spec.OutputDir, globFromPattern(spec.Pattern))
	frames, err := filepath.Glob(glob)
	if err != nil {
		e.logger.Warn("could not count extracted frames", zap.String("glob", glob), zap.Error(err))
		return result, nil
	}

	result.FramePaths = frames
	result.FrameCount = len(frames)
	result.CountKnown = true

	e.logger.Info("frames extracted",
		zap.Int("count", len(frames)),
		zap.Float64("video_duration", duration),
	)
	return result, nil
}

// buildArgs maps the spec to an ffmpeg argument list. -ss goes before -i
// for input-side seeking, and the fps filter precedes scale so discarded
// frames are never scaled.
func buildArgs(spec port.ExtractionSpec) []string {
	args := []string{"-hide_banner", "-y"}
	if spec.Start != "" {
		args = append(args, "-ss", spec.Start)
	}
	args = append(args, "-i", spec.VideoPath)
	if spec.Duration != "" {
		args = append(args, "-t", spec.Duration)
	}

	filter := fmt.Sprintf("fps=%g", spec.FPS)
	if spec.Scale != "" {
		filter += ",scale=" + spec.Scale
	}

	return append(args,
		"-vf", filter,
		"-vsync", "vfr",
		filepath.Join(spec.OutputDir, spec.Pattern),
	)
}

// globFromPattern turns a printf-style pattern like frame_%06d.png into
// the glob frame_*.png used to count the produced files.
func globFromPattern(pattern string) string {
	return patternVerb.ReplaceAllString(pattern, "*")
}

func (e *Extractor) probeDuration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, e.ffprobeBin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}

func stderrTail(b []byte) []byte {
	if len(b) > stderrTailLimit {
		b = b[len(b)-stderrTailLimit:]
	}
	return bytes.TrimSpace(b)
}
