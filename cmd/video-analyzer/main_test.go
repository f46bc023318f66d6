package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/kmmndr/video_analyzer/internal/analyzer"
	"github.com/kmmndr/video_analyzer/internal/logger"
)

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestParse_FlagsAfterVideo(t *testing.T) {
	cli := parse(t, "clip.mp4", "--mode", "shake")

	assert.Equal(t, "clip.mp4", cli.Video)
	assert.Equal(t, "shake", cli.Mode)
	assert.Equal(t, 0.5, cli.Threshold)
	assert.Empty(t, cli.Output)
	assert.Equal(t, "info", cli.LogLevel)
	assert.Equal(t, "console", cli.LogFormat)
}

func TestParse_QuietLogLevel(t *testing.T) {
	cli := parse(t, "clip.mp4", "--mode", "face", "--log-level", "quiet")

	assert.Equal(t, logger.LevelQuiet, logger.ParseLogLevel(cli.LogLevel))
	assert.IsType(t, &logger.ConsoleLogger{}, cli.newLogger())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing mode", []string{"clip.mp4"}},
		{"unknown mode", []string{"clip.mp4", "--mode", "motion"}},
		{"non-numeric threshold", []string{"clip.mp4", "--mode", "shake", "--threshold", "high"}},
		{"missing video", []string{"--mode", "face"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := kong.New(&CLI{}, kong.Vars{"version": "test"})
			require.NoError(t, err)
			_, err = parser.Parse(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestRun_MissingVideoWritesNothing(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")
	cli := parse(t, filepath.Join(dir, "missing.mp4"), "--mode", "shake", "-o", output, "-Q")

	err := cli.Run()

	assert.ErrorIs(t, err, analyzer.ErrIO)
	assert.NoFileExists(t, output)
}

func TestRun_CorruptVideoWritesNothing(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "corrupt.mp4")
	require.NoError(t, os.WriteFile(videoPath, nil, 0644))
	output := filepath.Join(dir, "out.json")
	cli := parse(t, videoPath, "--mode", "shake", "-o", output, "-Q")

	err := cli.Run()

	assert.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestRun_MissingOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	videoPath := writeStillVideo(t, dir)
	missing := filepath.Join(dir, "missing")
	cli := parse(t, videoPath, "--mode", "shake", "-o", filepath.Join(missing, "out.json"), "-Q")

	err := cli.Run()

	assert.ErrorIs(t, err, analyzer.ErrIO)
	assert.NoDirExists(t, missing)
}

func TestRun_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0644))
	configPath := filepath.Join(dir, "analyzer.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("flow:\n  poly_n: 9\n"), 0644))
	cli := parse(t, videoPath, "--mode", "shake", "--config", configPath, "-Q")

	err := cli.Run()

	assert.ErrorIs(t, err, analyzer.ErrConfig)
}

func writeStillVideo(t *testing.T, dir string) string {
	t.Helper()

	videoPath := filepath.Join(dir, "still.avi")
	writer, err := gocv.VideoWriterFile(videoPath, "MJPG", 10, 64, 48, true)
	if err != nil || !writer.IsOpened() {
		t.Skip("no MJPG writer available in this OpenCV build")
	}
	for i := 0; i < 4; i++ {
		mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 90, 90, 0), 48, 64, gocv.MatTypeCV8UC3)
		require.NoError(t, writer.Write(mat))
		mat.Close()
	}
	require.NoError(t, writer.Close())
	return videoPath
}

func TestRun_ShakeOnEncodedVideo(t *testing.T) {
	dir := t.TempDir()
	videoPath := writeStillVideo(t, dir)

	now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	cli := parse(t, videoPath, "--mode", "shake", "-Q")
	require.NoError(t, cli.Run())

	output := filepath.Join(dir, "still_shake_20240102_030405.json")
	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, videoPath, summary["source_video"])
	assert.Equal(t, []interface{}{}, summary["shake_events"])
	assert.Equal(t, float64(0), summary["total_events"])
}
