package entity

import (
	"math"
	"regexp"
	"strings"
)

// patternVerb matches a printf-style numeric placeholder such as %d or %06d.
var patternVerb = regexp.MustCompile(`%0?[0-9]*d`)

// ExtractionJob is the resolved configuration for one run. It is built once
// from user input, validated, and never mutated afterwards.
type ExtractionJob struct {
	URL         string
	OutDir      string
	FPS         float64
	Pattern     string
	Scale       string // empty means keep the source size
	Start       string // empty means the beginning of the video
	Duration    string // empty means until the end of the video
	KeepVideo   bool
	VideoPath   string // only used when KeepVideo is set
	ArchivePath string // empty means no archive is written
}

// JobParams carries the raw option values into NewExtractionJob.
type JobParams struct {
	URL         string
	OutDir      string
	FPS         float64
	Pattern     string
	Scale       string
	Start       string
	Duration    string
	KeepVideo   bool
	VideoPath   string
	ArchivePath string
}

// NewExtractionJob validates p and returns the immutable job record.
// It performs no I/O.
func NewExtractionJob(p JobParams) (*ExtractionJob, error) {
	if strings.TrimSpace(p.URL) == "" {
		return nil, &ValidationError{Flag: "url", Reason: "a video URL is required"}
	}
	if p.OutDir == "" {
		return nil, &ValidationError{Flag: "--out-dir", Reason: "must not be empty"}
	}
	if p.FPS <= 0 || math.IsNaN(p.FPS) || math.IsInf(p.FPS, 0) {
		return nil, &ValidationError{Flag: "--fps", Reason: "must be a positive number"}
	}
	if err := validatePattern(p.Pattern); err != nil {
		return nil, err
	}
	if p.KeepVideo && p.VideoPath == "" {
		return nil, &ValidationError{Flag: "--video-path", Reason: "must not be empty with --keep-video"}
	}

	return &ExtractionJob{
		URL:         p.URL,
		OutDir:      p.OutDir,
		FPS:         p.FPS,
		Pattern:     p.Pattern,
		Scale:       p.Scale,
		Start:       p.Start,
		Duration:    p.Duration,
		KeepVideo:   p.KeepVideo,
		VideoPath:   p.VideoPath,
		ArchivePath: p.ArchivePath,
	}, nil
}

func validatePattern(pattern string) error {
	verbs := patternVerb.FindAllString(pattern, -1)
	if len(verbs) != 1 || strings.Count(pattern, "%") != 1 {
		return &ValidationError{
			Flag:   "--pattern",
			Reason: "must contain exactly one numeric placeholder such as %06d",
		}
	}
	return nil
}
