package motion

import (
	"encoding/json"

	"github.com/kmmndr/video_analyzer/internal/jsonfloat"
)

// ShakeEvent marks a frame whose motion relative to its predecessor
// exceeded the shake threshold.
type ShakeEvent struct {
	Frame     int     `json:"frame"`
	Timestamp float64 `json:"timestamp"`
	Magnitude float64 `json:"magnitude"`
}

func NewShakeEvent(frameIndex int, timestamp float64, magnitude float64) ShakeEvent {
	return ShakeEvent{
		Frame:     frameIndex,
		Timestamp: timestamp,
		Magnitude: magnitude,
	}
}

// MarshalJSON always writes timestamp and magnitude with a fractional part.
func (e ShakeEvent) MarshalJSON() ([]byte, error) {
	timestamp, err := jsonfloat.Marshal(e.Timestamp)
	if err != nil {
		return nil, err
	}
	magnitude, err := jsonfloat.Marshal(e.Magnitude)
	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		Frame     int             `json:"frame"`
		Timestamp json.RawMessage `json:"timestamp"`
		Magnitude json.RawMessage `json:"magnitude"`
	}{e.Frame, timestamp, magnitude})
}
