package downloader

import "io"

// countingWriter reports the running total after every write.
type countingWriter struct {
	w        io.Writer
	total    int64
	progress func(done int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.total += int64(n)
		if c.progress != nil {
			c.progress(c.total)
		}
	}

	return n, err
}

func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	cw := &countingWriter{w: dst, progress: progress}
	buf := make([]byte, 32*1024)

	return io.CopyBuffer(cw, src, buf)
}
