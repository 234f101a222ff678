package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// VideoReader reads frames of a video file sequentially
type VideoReader struct {
	capture *gocv.VideoCapture
	FPS     float64
	Width   int
	Height  int
}

// OpenVideo opens video file for reading
func OpenVideo(path string) (*VideoReader, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video %s", path)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Errorf("Can't open video %s", path)
	}
	return &VideoReader{
		capture: capture,
		FPS:     capture.Get(gocv.VideoCaptureFPS),
		Width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

// Read reads next frame into dst. False means end of stream or a frame which can't be decoded.
func (reader *VideoReader) Read(dst *gocv.Mat) bool {
	if ok := reader.capture.Read(dst); !ok {
		return false
	}
	return !dst.Empty()
}

// Close releases the capture
func (reader *VideoReader) Close() error {
	return reader.capture.Close()
}

// VideoWriter writes annotated frames
type VideoWriter struct {
	writer *gocv.VideoWriter
}

// CreateVideo creates video file with given fourcc codec, fps and frame size
func CreateVideo(path, codec string, fps float64, width, height int) (*VideoWriter, error) {
	writer, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create video %s", path)
	}
	return &VideoWriter{writer: writer}, nil
}

// Write appends frame to the video
func (vw *VideoWriter) Write(frame gocv.Mat) error {
	return errors.Wrap(vw.writer.Write(frame), "Can't write frame")
}

// Close finalizes the video file
func (vw *VideoWriter) Close() error {
	return vw.writer.Close()
}
