// Package video samples key-frames from a frame stream.
//
// A FrameSource yields decoded frames in order. The Sampler evaluates the
// first frame and then one frame per sampling interval (two seconds of video
// by default), compares it in grayscale with the previous key-frame and emits
// it when enough pixels changed.
//
// Sources:
//
//   - SliceSource: in-memory frames, mostly for tests
//   - GIFSource: animated GIFs through image/gif
//   - OpenCapture: any container OpenCV can read (build tag gocv)
package video
