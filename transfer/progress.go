/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transfer

import (
	"io"
	"sync/atomic"
)

// ProgressFunc receives the bytes moved so far and the archive size.
type ProgressFunc func(transferred, total int64)

// progressReader reports reads from r. Seeking resets the count to the new
// offset so SDK retries and checksum passes do not overcount.
type progressReader struct {
	r           io.Reader
	total       int64
	transferred atomic.Int64
	report      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.notify(p.transferred.Add(int64(n)))
	}
	return n, err
}

func (p *progressReader) Seek(offset int64, whence int) (int64, error) {
	s, ok := p.r.(io.Seeker)
	if !ok {
		return 0, errNotSeekable
	}
	pos, err := s.Seek(offset, whence)
	if err == nil {
		p.transferred.Store(pos)
	}
	return pos, err
}

func (p *progressReader) notify(n int64) {
	if p.report != nil {
		p.report(n, p.total)
	}
}

// progressWriter reports writes to w.
type progressWriter struct {
	w           io.Writer
	total       int64
	transferred int64
	report      ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.transferred += int64(n)
	if n > 0 && p.report != nil {
		p.report(p.transferred, p.total)
	}
	return n, err
}
