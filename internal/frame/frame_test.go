package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func newColorFrame(t *testing.T, frameIndex int) *Frame {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 4, 6, gocv.MatTypeCV8UC3)
	f, err := NewFrame(frameIndex, &mat)
	require.NoError(t, err)
	return f
}

func TestNewFrame_Empty(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	f, err := NewFrame(0, &mat)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrEmptyFrame)

	f, err = NewFrame(0, nil)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestFrame_Gray(t *testing.T) {
	f := newColorFrame(t, 7)
	defer f.Close()

	gray, err := f.Gray()
	require.NoError(t, err)
	defer gray.Close()

	assert.Equal(t, 7, gray.FrameIndex())
	assert.Equal(t, 1, gray.Mat().Channels())
	assert.Equal(t, 4, gray.Height())
	assert.Equal(t, 6, gray.Width())

	// already gray: cloned, not converted
	again, err := gray.Gray()
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, 1, again.Mat().Channels())
	assert.Equal(t, 7, again.FrameIndex())
}

func TestFrameBuffer_Push(t *testing.T) {
	fb := NewFrameBuffer()
	defer fb.Reset()

	assert.Nil(t, fb.Previous())

	first := newColorFrame(t, 0)
	fb.Push(first)
	assert.Equal(t, 0, fb.Previous().FrameIndex())

	second := newColorFrame(t, 1)
	fb.Push(second)
	assert.Equal(t, 1, fb.Previous().FrameIndex())
	assert.True(t, first.Mat().Closed())

	fb.Reset()
	assert.Nil(t, fb.Previous())
	assert.True(t, second.Mat().Closed())
}
