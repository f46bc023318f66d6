package detect

import (
	"fmt"

	"github.com/kmmndr/video_analyzer/internal/logger"
	"github.com/kmmndr/video_analyzer/internal/video"
)

type Detector struct {
	classifier Classifier
	log        logger.Logger
}

func NewDetector(classifier Classifier, log logger.Logger) *Detector {
	return &Detector{
		classifier: classifier,
		log:        log.WithComponent("detect"),
	}
}

// Detect runs the classifier on every frame of stream in order and calls
// onDetection for frames with at least one match. It returns the number
// of frames read.
func (d *Detector) Detect(stream video.Source, onDetection func(Detection)) (int, error) {
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

		rects := d.classifier.Detect(grayFrame)
		if len(rects) > 0 {
			d.log.Debug("Frame %d: %d matches", frameIndex, len(rects))
			onDetection(NewDetection(frameIndex, stream.TimeAtFrame(grayFrame), rects))
		}

		grayFrame.Close()
		frameIndex++
	}

	return frameIndex, nil
}
