package port

import "context"

// VideoDownloader materializes the video at url into a local file at
// destPath. Implementations shell out to an external tool and must
// surface its captured stderr in the returned error.
type VideoDownloader interface {
	Download(ctx context.Context, url string, destPath string) error
}
