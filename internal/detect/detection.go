package detect

import (
	"encoding/json"
	"image"

	"github.com/samber/lo"

	"github.com/kmmndr/video_analyzer/internal/jsonfloat"
)

// Location is a bounding box as [x, y, width, height] in pixels.
type Location [4]int

func NewLocation(r image.Rectangle) Location {
	return Location{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
}

// Detection records the matches found in one frame.
type Detection struct {
	Frame     int        `json:"frame"`
	Timestamp float64    `json:"timestamp"`
	Count     int        `json:"count"`
	Locations []Location `json:"locations"`
}

// NewDetection keeps the classifier order of rects.
func NewDetection(frameIndex int, timestamp float64, rects []image.Rectangle) Detection {
	locations := lo.Map(rects, func(r image.Rectangle, _ int) Location {
		return NewLocation(r)
	})

	return Detection{
		Frame:     frameIndex,
		Timestamp: timestamp,
		Count:     len(locations),
		Locations: locations,
	}
}

func (d Detection) MarshalJSON() ([]byte, error) {
	timestamp, err := jsonfloat.Marshal(d.Timestamp)
	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		Frame     int             `json:"frame"`
		Timestamp json.RawMessage `json:"timestamp"`
		Count     int             `json:"count"`
		Locations []Location      `json:"locations"`
	}{d.Frame, timestamp, d.Count, d.Locations})
}
