// Package textio opens line-oriented text inputs, transparently
// decompressing gzip, bzip2, xz and zstd streams identified by their
// leading magic bytes.
package textio

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies the compression applied to an input stream.
type Format int

const (
	Plain Format = iota
	Gzip
	Bzip2
	Xz
	Zstd
)

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// detect sniffs the compression format from the first bytes of a stream.
// Anything without a recognized magic prefix is treated as plain text.
func detect(prefix []byte) Format {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, bzip2Magic):
		return Bzip2
	case bytes.HasPrefix(prefix, xzMagic):
		return Xz
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	default:
		return Plain
	}
}

// Open opens path for reading, sniffing and unwrapping any supported
// compression. The path "-" means stdin. The caller must close the
// returned ReadCloser.
func Open(path string) (io.ReadCloser, Format, error) {
	if path == "-" {
		r, format, err := NewReader(os.Stdin)
		if err != nil {
			return nil, Plain, err
		}
		// stdin itself is not ours to close, only the decompressor
		s := &stream{Reader: r}
		if c, ok := r.(io.Closer); ok {
			s.closers = []io.Closer{c}
		}
		return s, format, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Plain, err
	}
	r, format, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, Plain, err
	}
	s := &stream{Reader: r, closers: []io.Closer{f}}
	if c, ok := r.(io.Closer); ok {
		// decompressor first, underlying file last
		s.closers = append([]io.Closer{c}, s.closers...)
	}
	return s, format, nil
}

// NewReader wraps r with the decompressor its magic bytes call for, or
// returns a buffered passthrough for plain text.
func NewReader(r io.Reader) (io.Reader, Format, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, Plain, fmt.Errorf("sniff input: %w", err)
	}

	format := detect(prefix)
	switch format {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, format, nil
	case Bzip2:
		return bzip2.NewReader(br), format, nil
	case Xz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("open xz stream: %w", err)
		}
		return xr, format, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), format, nil
	default:
		return br, Plain, nil
	}
}

// stream couples a decoded reader with the closers that back it.
type stream struct {
	io.Reader
	closers []io.Closer
}

func (s *stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
