package port

import "context"

// ExtractionSpec describes one transcoder invocation. Optional fields are
// empty strings; argument building omits the corresponding flag.
type ExtractionSpec struct {
	VideoPath string
	OutputDir string
	Pattern   string
	FPS       float64
	Scale     string
	Start     string
	Duration  string
}

type ExtractionResult struct {
	FramePaths    []string
	FrameCount    int
	CountKnown    bool // false when counting the produced files failed
	VideoDuration float64
}

type FrameExtractor interface {
	ExtractFrames(ctx context.Context, spec ExtractionSpec) (*ExtractionResult, error)
}
