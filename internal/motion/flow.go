package motion

import (
	"errors"

	"gocv.io/x/gocv"

	"github.com/kmmndr/video_analyzer/internal/frame"
)

var ErrFrameSizeMismatch = errors.New("frames differ in size")

// Estimator reduces the motion between two consecutive gray frames to a
// single non-negative magnitude.
type Estimator interface {
	Magnitude(previous *frame.Frame, current *frame.Frame) (float64, error)
}

// FlowParams are the Farneback dense optical flow parameters.
type FlowParams struct {
	PyrScale   float64
	Levels     int
	WinSize    int
	Iterations int
	PolyN      int
	PolySigma  float64
	Flags      int
}

func DefaultFlowParams() FlowParams {
	return FlowParams{
		PyrScale:   0.5,
		Levels:     3,
		WinSize:    15,
		Iterations: 3,
		PolyN:      5,
		PolySigma:  1.2,
		Flags:      0,
	}
}

// FarnebackEstimator computes dense optical flow and returns the mean
// per-pixel flow vector norm.
type FarnebackEstimator struct {
	params FlowParams
}

func NewFarnebackEstimator(params FlowParams) *FarnebackEstimator {
	return &FarnebackEstimator{params: params}
}

func (e *FarnebackEstimator) Magnitude(previous *frame.Frame, current *frame.Frame) (float64, error) {
	if previous.Width() != current.Width() || previous.Height() != current.Height() {
		return 0, ErrFrameSizeMismatch
	}

	flow := gocv.NewMat()
	defer flow.Close()

	gocv.CalcOpticalFlowFarneback(*previous.Mat(), *current.Mat(), &flow,
		e.params.PyrScale,
		e.params.Levels,
		e.params.WinSize,
		e.params.Iterations,
		e.params.PolyN,
		e.params.PolySigma,
		e.params.Flags)

	components := gocv.Split(flow)
	defer func() {
		for _, c := range components {
			c.Close()
		}
	}()
	if len(components) != 2 {
		return 0, errors.New("unexpected optical flow layout")
	}

	magnitude := gocv.NewMat()
	defer magnitude.Close()

	angle := gocv.NewMat()
	defer angle.Close()

	gocv.CartToPolar(components[0], components[1], &magnitude, &angle, false)

	return magnitude.Mean().Val1, nil
}

var _ Estimator = (*FarnebackEstimator)(nil)
