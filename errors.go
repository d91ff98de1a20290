package spermtrack

import (
	"errors"

	"github.com/you112ef/spermtrack/media"
)

var (
	// ErrUnsupportedMedia is returned when an input file is neither a
	// supported image nor video format
	ErrUnsupportedMedia = media.ErrUnsupported
	// ErrEmptyStream is returned when a video yields no frames
	ErrEmptyStream = errors.New("video stream has no frames")
	// ErrInvalidFrameRate is returned when a video reports a frame rate of
	// zero or less
	ErrInvalidFrameRate = errors.New("invalid video frame rate")
	// ErrNoFramesAnalyzed is returned when detection failed on every sampled
	// frame of a video
	ErrNoFramesAnalyzed = errors.New("no video frames could be analyzed")
)
