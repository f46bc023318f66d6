// Package detect runs pretrained Haar cascade classifiers over the frames
// of a video source.
package detect

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/kmmndr/video_analyzer/internal/frame"
)

var ErrCascadeNotFound = errors.New("cascade file not found")

// Classifier finds bounding boxes in a single-channel frame.
type Classifier interface {
	Detect(gray *frame.Frame) []image.Rectangle
	Close() error
}

// CascadeParams tune multi-scale detection.
type CascadeParams struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
	MaxSize      image.Point
}

func DefaultCascadeParams() CascadeParams {
	return CascadeParams{
		ScaleFactor:  1.1,
		MinNeighbors: 4,
	}
}

// CascadeClassifier wraps an OpenCV Haar cascade loaded from an XML file.
type CascadeClassifier struct {
	classifier gocv.CascadeClassifier
	params     CascadeParams
}

func NewCascadeClassifier(path string, params CascadeParams) (*CascadeClassifier, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("unable to load cascade file %s", path)
	}

	return &CascadeClassifier{
		classifier: classifier,
		params:     params,
	}, nil
}

func (c *CascadeClassifier) Detect(gray *frame.Frame) []image.Rectangle {
	return c.classifier.DetectMultiScaleWithParams(*gray.Mat(),
		c.params.ScaleFactor,
		c.params.MinNeighbors,
		0,
		c.params.MinSize,
		c.params.MaxSize)
}

func (c *CascadeClassifier) Close() error {
	return c.classifier.Close()
}

// ResolveCascade returns the first existing candidate for name. Absolute
// or explicitly relative names are used as is, bare names are looked up in
// dirs in order.
func ResolveCascade(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrCascadeNotFound, name)
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %v)", ErrCascadeNotFound, name, dirs)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var _ Classifier = (*CascadeClassifier)(nil)

// DefaultCascadeDirs lists where OpenCV installs its bundled Haar cascades.
var DefaultCascadeDirs = []string{
	"data/haarcascades",
	"/usr/share/opencv4/haarcascades",
	"/usr/local/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
	"/usr/local/share/opencv/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
}

// Cascade file names per detection type.
const (
	FaceCascade   = "haarcascade_frontalface_default.xml"
	ObjectCascade = "haarcascade_fullbody.xml"
)
