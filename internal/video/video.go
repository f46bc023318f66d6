package video

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
)

var ErrNoFrameRate = errors.New("no declared frame rate")

// OpenVideo checks that videoPath names a regular, non-empty file and
// returns a Stream over it.
func OpenVideo(videoPath string) (*Stream, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open video file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("unable to open video file: %s is a directory", videoPath)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("unable to open video file: %s is empty", videoPath)
	}

	return NewFileStream(videoPath)
}

// IsContainerProbeable reports whether the file extension names an
// ISO-BMFF container that DeclaredFrameRate can read.
func IsContainerProbeable(videoPath string) bool {
	switch strings.ToLower(filepath.Ext(videoPath)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// DeclaredFrameRate reads the frame rate of the first video track from
// the container metadata.
func DeclaredFrameRate(videoPath string) (float64, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DeclaredFrameRateFromReader(f)
}

func DeclaredFrameRateFromReader(reader io.ReadSeeker) (float64, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return 0, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return 0, ErrNoFrameRate
	}

	for _, trak := range moov.Traks {
		if fps, ok := progressiveFrameRate(trak); ok {
			return fps, nil
		}
		if fps, ok := fragmentedFrameRate(moov, trak); ok {
			return fps, nil
		}
	}

	return 0, ErrNoFrameRate
}

func videoTimescale(trak *mp4.TrakBox) (uint32, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Mdhd == nil {
		return 0, false
	}
	if trak.Mdia.Hdlr.HandlerType != "vide" || trak.Mdia.Mdhd.Timescale == 0 {
		return 0, false
	}
	return trak.Mdia.Mdhd.Timescale, true
}

// fragmentedFrameRate uses the default sample duration of the movie
// extends box, the only timing an init segment carries.
func fragmentedFrameRate(moov *mp4.MoovBox, trak *mp4.TrakBox) (float64, bool) {
	timescale, ok := videoTimescale(trak)
	if !ok || moov.Mvex == nil || moov.Mvex.Trex == nil {
		return 0, false
	}
	if moov.Mvex.Trex.DefaultSampleDuration == 0 {
		return 0, false
	}
	return float64(timescale) / float64(moov.Mvex.Trex.DefaultSampleDuration), true
}

func progressiveFrameRate(trak *mp4.TrakBox) (float64, bool) {
	timescale, ok := videoTimescale(trak)
	if !ok {
		return 0, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stts == nil {
		return 0, false
	}

	stts := trak.Mdia.Minf.Stbl.Stts
	var samples, duration uint64
	for i, count := range stts.SampleCount {
		samples += uint64(count)
		duration += uint64(count) * uint64(stts.SampleTimeDelta[i])
	}
	if samples == 0 || duration == 0 {
		return 0, false
	}

	return float64(samples) * float64(timescale) / float64(duration), true
}
