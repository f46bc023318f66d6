package frame

import (
	"errors"

	"gocv.io/x/gocv"
)

var ErrEmptyFrame = errors.New("frame is empty")

// Frame is a decoded picture tagged with its position in the source.
type Frame struct {
	frameIndex int
	mat        *gocv.Mat
}

func NewFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmptyFrame
	}

	return &Frame{frameIndex: frameIndex, mat: mat}, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

// Gray returns a single-channel copy of the frame. Frames that are
// already single-channel are cloned as is.
func (f *Frame) Gray() (*Frame, error) {
	if f.mat.Channels() == 1 {
		return f.Clone()
	}

	gray := gocv.NewMat()
	switch f.mat.Channels() {
	case 4:
		gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRToGray)
	}

	grayFrame, err := NewFrame(f.frameIndex, &gray)
	if err != nil {
		gray.Close()
		return nil, err
	}
	return grayFrame, nil
}

func (f *Frame) Clone() (*Frame, error) {
	clone := f.mat.Clone()

	return NewFrame(f.frameIndex, &clone)
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Close() {
	f.mat.Close()
}
