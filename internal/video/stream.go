package video

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/kmmndr/video_analyzer/internal/frame"
)

// Source is an ordered, finite sequence of frames with a declared frame rate.
type Source interface {
	// Read returns the next frame tagged with frameIndex, or nil once the
	// source is exhausted.
	Read(frameIndex int) *frame.Frame
	Fps() float64
	TimeAtFrame(frame *frame.Frame) float64
	Close()
}

type Stream struct {
	Video *gocv.VideoCapture
	fps   float64
}

// NewFileStream opens a video file. The frame rate reported by the capture
// backend is used, falling back to the rate declared in the container.
func NewFileStream(videoPath string) (*Stream, error) {
	video, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open video file: %w", err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("unable to open video file: %s", videoPath)
	}

	fps := resolveFrameRate(video.Get(gocv.VideoCaptureFPS), videoPath)
	return &Stream{Video: video, fps: fps}, nil
}

// resolveFrameRate keeps a positive backend rate and otherwise falls back
// to the container declaration when there is one.
func resolveFrameRate(reported float64, videoPath string) float64 {
	if reported > 0 || !IsContainerProbeable(videoPath) {
		return reported
	}
	if declared, err := DeclaredFrameRate(videoPath); err == nil {
		return declared
	}
	return reported
}

func (s *Stream) Close() {
	s.Video.Close()
}

// Fps returns the declared frame rate, zero or less when none is known.
func (s *Stream) Fps() float64 {
	return s.fps
}

func (s *Stream) Read(frameIndex int) *frame.Frame {
	mat := gocv.NewMat()
	if ok := s.Video.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil
	}

	f, err := frame.NewFrame(frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil
	}
	return f
}

func (s *Stream) TimeAtFrame(frame *frame.Frame) float64 {
	return TimeAt(frame.FrameIndex(), s.Fps())
}

// TimeAt converts a frame index into seconds from the start of the video.
func TimeAt(frameIndex int, fps float64) float64 {
	return float64(frameIndex) / fps
}

var _ Source = (*Stream)(nil)
