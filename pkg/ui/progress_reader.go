package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// progressReader is an io.Reader that advances a progress bar by the number
// of bytes read through it.
type progressReader struct {
	r   io.Reader
	bar *progressbar.ProgressBar
}

// NewProgressReader creates a new progressReader that wraps r and reports to
// bar.
func NewProgressReader(r io.Reader, bar *progressbar.ProgressBar) io.Reader {
	return &progressReader{r: r, bar: bar}
}

// Read implements the io.Reader interface. The bar is finished when r is
// exhausted.
func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if pr.bar == nil {
		return n, err
	}
	if n > 0 {
		pr.bar.Add(n)
	}
	if err == io.EOF {
		pr.bar.Finish()
	}
	return n, err
}
