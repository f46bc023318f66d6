package motion

import (
	"fmt"

	"github.com/kmmndr/video_analyzer/internal/frame"
	"github.com/kmmndr/video_analyzer/internal/logger"
	"github.com/kmmndr/video_analyzer/internal/video"
)

// Sensor scans a source for camera shake. A frame is reported when its
// magnitude is strictly greater than the threshold.
type Sensor struct {
	threshold   float64
	estimator   Estimator
	frameBuffer *frame.FrameBuffer
	log         logger.Logger
}

func NewSensor(threshold float64, estimator Estimator, log logger.Logger) *Sensor {
	return &Sensor{
		threshold:   threshold,
		estimator:   estimator,
		frameBuffer: frame.NewFrameBuffer(),
		log:         log.WithComponent("shake"),
	}
}

// Detect reads every frame of stream in order and calls onShake for each
// shake event. It returns the number of frames read.
func (s *Sensor) Detect(stream video.Source, onShake func(ShakeEvent)) (int, error) {
	defer s.frameBuffer.Reset()

	frameIndex := 0
	for {
		currentFrame := stream.Read(frameIndex)
		if currentFrame == nil {
			break
		}

		grayFrame, err := currentFrame.Gray()
		currentFrame.Close()
		if err != nil {
			return frameIndex, fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		frameIndex++

		previous := s.frameBuffer.Previous()
		if previous == nil {
			s.frameBuffer.Push(grayFrame)
			continue
		}

		magnitude, err := s.estimator.Magnitude(previous, grayFrame)
		if err != nil {
			grayFrame.Close()
			return frameIndex, fmt.Errorf("frame %d: %w", grayFrame.FrameIndex(), err)
		}
		s.log.Debug("Frame %d motion magnitude %.4f", grayFrame.FrameIndex(), magnitude)

		if magnitude > s.threshold {
			onShake(NewShakeEvent(grayFrame.FrameIndex(), stream.TimeAtFrame(grayFrame), magnitude))
		}

		s.frameBuffer.Push(grayFrame)
	}

	return frameIndex, nil
}
