// Package report builds and writes the JSON result of an analysis run.
package report

import (
	"github.com/kmmndr/video_analyzer/internal/detect"
	"github.com/kmmndr/video_analyzer/internal/motion"
)

// Summary is the write-once result of one run.
type Summary interface {
	Total() int
}

type ShakeSummary struct {
	SourceVideo string              `json:"source_video"`
	ShakeEvents []motion.ShakeEvent `json:"shake_events"`
	TotalEvents int                 `json:"total_events"`
}

func NewShakeSummary(sourceVideo string, events []motion.ShakeEvent) *ShakeSummary {
	if events == nil {
		events = []motion.ShakeEvent{}
	}
	return &ShakeSummary{
		SourceVideo: sourceVideo,
		ShakeEvents: events,
		TotalEvents: len(events),
	}
}

func (s *ShakeSummary) Total() int {
	return s.TotalEvents
}

type DetectionSummary struct {
	SourceVideo               string             `json:"source_video"`
	DetectionType             string             `json:"detection_type"`
	Detections                []detect.Detection `json:"detections"`
	TotalFramesWithDetections int                `json:"total_frames_with_detections"`
}

func NewDetectionSummary(sourceVideo, detectionType string, detections []detect.Detection) *DetectionSummary {
	if detections == nil {
		detections = []detect.Detection{}
	}
	return &DetectionSummary{
		SourceVideo:               sourceVideo,
		DetectionType:             detectionType,
		Detections:                detections,
		TotalFramesWithDetections: len(detections),
	}
}

func (s *DetectionSummary) Total() int {
	return s.TotalFramesWithDetections
}
