package frame

// FrameBuffer keeps the last gray frame of a scan so that each new frame
// can be compared with its predecessor.
type FrameBuffer struct {
	previous *Frame
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Previous returns the frame pushed before the current one, or nil when
// nothing has been pushed yet.
func (fb *FrameBuffer) Previous() *Frame {
	return fb.previous
}

// Push stores currentFrame as the new predecessor and releases the old one.
// The buffer takes ownership of currentFrame.
func (fb *FrameBuffer) Push(currentFrame *Frame) {
	if fb.previous != nil {
		fb.previous.Close()
	}
	fb.previous = currentFrame
}

func (fb *FrameBuffer) Reset() {
	if fb.previous != nil {
		fb.previous.Close()
		fb.previous = nil
	}
}
