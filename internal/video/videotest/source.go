// Package videotest provides in-memory video sources for tests.
package videotest

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"gocv.io/x/gocv"

	"github.com/kmmndr/video_analyzer/internal/frame"
	"github.com/kmmndr/video_analyzer/internal/video"
)

// Source replays mats in order. Each Read hands out a clone.
type Source struct {
	mats []gocv.Mat
	fps  float64
	next int
}

// NewSource takes ownership of mats.
func NewSource(fps float64, mats ...gocv.Mat) *Source {
	return &Source{mats: mats, fps: fps}
}

func (s *Source) Read(frameIndex int) *frame.Frame {
	if s.next >= len(s.mats) {
		return nil
	}
	mat := s.mats[s.next].Clone()
	s.next++

	f, err := frame.NewFrame(frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil
	}
	return f
}

func (s *Source) Fps() float64 {
	return s.fps
}

func (s *Source) TimeAtFrame(f *frame.Frame) float64 {
	return video.TimeAt(f.FrameIndex(), s.fps)
}

func (s *Source) Close() {
	for _, m := range s.mats {
		m.Close()
	}
	s.mats = nil
}

// Plain returns frames uniform gray frames, closed at test cleanup.
func Plain(t testing.TB, frames int, fps float64) *Source {
	t.Helper()

	s := NewSource(fps)
	for i := 0; i < frames; i++ {
		s.mats = append(s.mats, gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), 8, 8, gocv.MatTypeCV8UC3))
	}
	t.Cleanup(s.Close)
	return s
}

// Textured draws a deterministic pattern of random 8x8 blocks.
func Textured(width, height int) gocv.Mat {
	rng := rand.New(rand.NewSource(42))
	canvas := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	for y := 0; y < height; y += 8 {
		for x := 0; x < width; x += 8 {
			v := uint8(rng.Intn(256))
			gocv.Rectangle(&canvas, image.Rect(x, y, x+8, y+8), color.RGBA{R: v, G: v, B: v}, -1)
		}
	}
	return canvas
}

// Shifted returns 160x120 frames cut from a textured canvas. From frame
// shiftAt on, the picture content jumps shift pixels to the right.
func Shifted(t testing.TB, frames, shiftAt, shift int) *Source {
	t.Helper()

	const width, height = 160, 120
	canvas := Textured(width+shift, height)
	defer canvas.Close()

	s := NewSource(25)
	for i := 0; i < frames; i++ {
		x := shift
		if i >= shiftAt {
			x = 0
		}
		region := canvas.Region(image.Rect(x, 0, x+width, height))
		s.mats = append(s.mats, region.Clone())
		region.Close()
	}
	t.Cleanup(s.Close)
	return s
}

var _ video.Source = (*Source)(nil)
