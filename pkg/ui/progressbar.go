package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// NewBytesProgressBar creates a progress bar for a transfer of size bytes,
// drawn on w.
//
// Example:
//
//	bar := ui.NewBytesProgressBar(os.Stdout, int64(len(data)), "build.zip")
//	io.Copy(io.MultiWriter(dst, bar), bytes.NewReader(data))
func NewBytesProgressBar(w io.Writer, size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// UploadProgress returns a function that wraps an upload body in a progress
// bar drawn on w.
func UploadProgress(w io.Writer) func(name string, body io.Reader, size int64) io.Reader {
	return func(name string, body io.Reader, size int64) io.Reader {
		return NewProgressReader(body, NewBytesProgressBar(w, size, name))
	}
}
