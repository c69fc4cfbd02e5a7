package port

import "context"

type Archiver interface {
	Archive(ctx context.Context, filePaths []string, outputPath string) error
}
