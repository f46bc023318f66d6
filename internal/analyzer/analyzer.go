// Package analyzer runs one frame-sequential scan of a video and builds
// its summary.
package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/kmmndr/video_analyzer/internal/config"
	"github.com/kmmndr/video_analyzer/internal/detect"
	"github.com/kmmndr/video_analyzer/internal/logger"
	"github.com/kmmndr/video_analyzer/internal/motion"
	"github.com/kmmndr/video_analyzer/internal/report"
	"github.com/kmmndr/video_analyzer/internal/video"
)

var (
	// ErrIO reports an unopenable source or unwritable output.
	ErrIO = errors.New("i/o error")
	// ErrConfig reports an invalid mode, threshold, frame rate or detector setup.
	ErrConfig = errors.New("configuration error")
)

type Mode string

const (
	ModeShake  Mode = "shake"
	ModeFace   Mode = "face"
	ModeObject Mode = "object"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeShake, ModeFace, ModeObject:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrConfig, s)
}

type Options struct {
	VideoPath string
	Mode      Mode
	// Threshold applies to shake mode only.
	Threshold float64
	Config    config.Config
	// CascadeDirs are searched before Config.Cascade.Dirs.
	CascadeDirs []string
}

type (
	SourceOpener      func(videoPath string) (video.Source, error)
	ClassifierFactory func(path string, params detect.CascadeParams) (detect.Classifier, error)
)

type Analyzer struct {
	log           logger.Logger
	openSource    SourceOpener
	newClassifier ClassifierFactory
}

type Option func(*Analyzer)

func WithSourceOpener(open SourceOpener) Option {
	return func(a *Analyzer) {
		a.openSource = open
	}
}

func WithClassifierFactory(factory ClassifierFactory) Option {
	return func(a *Analyzer) {
		a.newClassifier = factory
	}
}

func New(log logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		log: log,
		openSource: func(videoPath string) (video.Source, error) {
			return video.OpenVideo(videoPath)
		},
		newClassifier: func(path string, params detect.CascadeParams) (detect.Classifier, error) {
			return detect.NewCascadeClassifier(path, params)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run scans opts.VideoPath once. Configuration is checked before the
// source is opened, and the frame rate before any frame is read.
func (a *Analyzer) Run(opts Options) (report.Summary, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	switch opts.Mode {
	case ModeShake:
		if math.IsNaN(opts.Threshold) || math.IsInf(opts.Threshold, 0) || opts.Threshold < 0 {
			return nil, fmt.Errorf("%w: threshold must be a non-negative number, got %v", ErrConfig, opts.Threshold)
		}
		return a.runShake(opts)
	default:
		return a.runDetection(opts)
	}
}

func (a *Analyzer) open(videoPath string) (video.Source, error) {
	stream, err := a.openSource(videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	fps := stream.Fps()
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		stream.Close()
		return nil, fmt.Errorf("%w: unable to get video frame rate of %s", ErrConfig, videoPath)
	}
	a.log.Info("Video frame rate: %.2f fps", fps)

	return stream, nil
}

func (a *Analyzer) runShake(opts Options) (report.Summary, error) {
	stream, err := a.open(opts.VideoPath)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	sensor := motion.NewSensor(opts.Threshold, motion.NewFarnebackEstimator(opts.Config.FlowParams()), a.log)

	events := []motion.ShakeEvent{}
	frames, err := sensor.Detect(stream, func(event motion.ShakeEvent) {
		events = append(events, event)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	a.log.Debug("Scanned %d frames", frames)

	return report.NewShakeSummary(opts.VideoPath, events), nil
}

func (a *Analyzer) runDetection(opts Options) (report.Summary, error) {
	name := opts.Config.Cascade.Face
	if opts.Mode == ModeObject {
		name = opts.Config.Cascade.Object
	}

	dirs := append(append([]string(nil), opts.CascadeDirs...), opts.Config.Cascade.Dirs...)
	path, err := detect.ResolveCascade(name, dirs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	classifier, err := a.newClassifier(path, opts.Config.CascadeParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer classifier.Close()
	a.log.Debug("Loaded cascade %s", path)

	stream, err := a.open(opts.VideoPath)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	detector := detect.NewDetector(classifier, a.log)

	detections := []detect.Detection{}
	frames, err := detector.Detect(stream, func(detection detect.Detection) {
		detections = append(detections, detection)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	a.log.Debug("Scanned %d frames", frames)

	return report.NewDetectionSummary(opts.VideoPath, string(opts.Mode), detections), nil
}
