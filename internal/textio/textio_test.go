package textio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

const sample = "1h45m\n300ms\n-1.5h\n"

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewReaderFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"plain", []byte(sample), Plain},
		{"gzip", nil, Gzip},
		{"xz", nil, Xz},
		{"zstd", nil, Zstd},
	}
	tests[1].data = gzipBytes(t, sample)
	tests[2].data = xzBytes(t, sample)
	tests[3].data = zstdBytes(t, sample)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, format, err := NewReader(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %v, want %v", format, tt.format)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != sample {
				t.Errorf("decoded %q, want %q", got, sample)
			}
		})
	}
}

func TestNewReaderEmptyInput(t *testing.T) {
	r, format, err := NewReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if format != Plain {
		t.Errorf("format = %v, want Plain", format)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("decoded %d bytes from empty input", len(got))
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.txt.gz")
	if err := os.WriteFile(path, gzipBytes(t, sample), 0644); err != nil {
		t.Fatal(err)
	}

	rc, format, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if format != Gzip {
		t.Errorf("format = %v, want Gzip", format)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != sample {
		t.Errorf("decoded %q, want %q", got, sample)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Open of missing file succeeded")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		prefix []byte
		want   Format
	}{
		{[]byte{0x1f, 0x8b, 0x08}, Gzip},
		{[]byte("BZh91AY"), Bzip2},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, Xz},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
		{[]byte("1h45m"), Plain},
		{nil, Plain},
	}
	for _, tt := range tests {
		if got := detect(tt.prefix); got != tt.want {
			t.Errorf("detect(%v) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}
