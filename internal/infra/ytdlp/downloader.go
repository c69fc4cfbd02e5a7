package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// formatSelector asks yt-dlp for an mp4 if possible, falling back to best.
const formatSelector = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/best"

const stderrTailLimit = 4096

// Downloader resolves a video URL to a local mp4 by shelling out to yt-dlp.
type Downloader struct {
	bin    string
	logger *zap.Logger
}

func NewDownloader(bin string, logger *zap.Logger) *Downloader {
	return &Downloader{bin: bin, logger: logger}
}

func (d *Downloader) Download(ctx context.Context, url string, destPath string) error {
	cmd := exec.CommandContext(ctx, d.bin, downloadArgs(url, destPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	d.logger.Info("running downloader",
		zap.String("bin", d.bin),
		zap.String("url", url),
	)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp: %w: %s", err, stderrTail(stderr.Bytes()))
	}

	if _, err := os.Stat(destPath); err != nil {
		return fmt.Errorf("yt-dlp did not produce expected file %s: %w", destPath, err)
	}
	return nil
}

func downloadArgs(url, destPath string) []string {
	return []string{
		"-o", destPath,
		"-f", formatSelector,
		"--remux-video", "mp4",
		url,
	}
}

func stderrTail(b []byte) []byte {
	if len(b) > stderrTailLimit {
		b = b[len(b)-stderrTailLimit:]
	}
	return bytes.TrimSpace(b)
}
