package ytdlp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// releaseURL points at the latest official yt-dlp release binary.
const releaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp"

// Resolve returns the path of a usable yt-dlp binary. When bin is not on
// PATH and fetchIfMissing is set, the official release binary is
// downloaded into the user cache dir and reused on later runs.
func Resolve(ctx context.Context, bin string, fetchIfMissing bool, logger *zap.Logger) (string, error) {
	if path, err := exec.LookPath(bin); err == nil {
		return path, nil
	}
	if !fetchIfMissing {
		return "", fmt.Errorf(
			"%s not found on PATH; install it (e.g. pip install yt-dlp) or run with --fetch-yt-dlp", bin)
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dest := filepath.Join(cacheDir, "framegrab", "yt-dlp")
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	logger.Info("fetching yt-dlp release binary", zap.String("dest", dest))
	if err := fetchBinary(ctx, releaseURL, dest); err != nil {
		return "", fmt.Errorf("fetch yt-dlp: %w", err)
	}
	return dest, nil
}

func fetchBinary(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}
