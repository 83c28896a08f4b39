// Package compressor provides the fixed, named set of byte-compression
// codecs used by the ratio aggregation pass.
//
// The set and its iteration order are fixed at compile time so that result
// tables, CSV columns, and cached artifacts stay reproducible across runs.
package compressor

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Algorithm identifies a compression codec.
type Algorithm string

// Algorithm constants, in canonical iteration order.
const (
	Gzip  Algorithm = "gzip"
	Bzip2 Algorithm = "bzip2"
	LZMA  Algorithm = "lzma"
	Zlib  Algorithm = "zlib"
	Zstd  Algorithm = "zstd"
)

// canonical is the fixed iteration order for the compressor set.
var canonical = []Algorithm{Gzip, Bzip2, LZMA, Zlib, Zstd}

// codecs maps each algorithm to its compression function.
var codecs = map[Algorithm]func([]byte) ([]byte, error){
	Gzip:  compressGzip,
	Bzip2: compressBzip2,
	LZMA:  compressXZ,
	Zlib:  compressZlib,
	Zstd:  compressZstd,
}

// Shared zstd encoder; EncodeAll is safe for concurrent use and avoids
// rebuilding encoder state per call.
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))

// Names returns the algorithms in canonical order. The returned slice is a
// copy and safe to modify.
func Names() []Algorithm {
	out := make([]Algorithm, len(canonical))
	copy(out, canonical)
	return out
}

// IsValid returns true if the algorithm is part of the compressor set.
func (a Algorithm) IsValid() bool {
	_, ok := codecs[a]
	return ok
}

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// Parse parses a string into an Algorithm, rejecting unknown names.
func Parse(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown compression algorithm: %q", s)
	}
	return a, nil
}

// Compress runs the named codec over data and returns the compressed bytes.
// Empty input is valid; the codec's header/trailer bytes are returned.
func Compress(algo Algorithm, data []byte) ([]byte, error) {
	fn, ok := codecs[algo]
	if !ok {
		return nil, fmt.Errorf("unknown compression algorithm: %q", algo)
	}
	return fn(data)
}

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressBzip2(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressXZ(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressZlib(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressZstd(data []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}
