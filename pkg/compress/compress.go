// Package compress shrinks cached payloads (search results, extracted
// events) before they are written to the cache store.
//
// ZSTD is the default codec. Gzip is kept for reading caches produced by
// older tooling.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Algorithm identifies a payload codec.
type Algorithm string

const (
	AlgorithmZSTD Algorithm = "zstd"
	AlgorithmGzip Algorithm = "gzip"
	AlgorithmNone Algorithm = "none"
)

// Codec compresses and decompresses cache payloads. Safe for concurrent use.
type Codec struct {
	algorithm Algorithm

	encoderPool sync.Pool
	decoderPool sync.Pool
}

// NewCodec creates a codec for the given algorithm.
func NewCodec(algorithm Algorithm) *Codec {
	c := &Codec{algorithm: algorithm}

	if algorithm == AlgorithmZSTD {
		c.encoderPool = sync.Pool{
			New: func() any {
				enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
				return enc
			},
		}
		c.decoderPool = sync.Pool{
			New: func() any {
				dec, _ := zstd.NewReader(nil)
				return dec
			},
		}
	}

	return c
}

// Algorithm returns the codec's algorithm.
func (c *Codec) Algorithm() Algorithm { return c.algorithm }

// Compress encodes the payload.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case AlgorithmZSTD:
		return c.compressZSTD(data)
	case AlgorithmGzip:
		return compressGzip(data)
	case AlgorithmNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", c.algorithm)
	}
}

// Decompress decodes the payload.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case AlgorithmZSTD:
		return c.decompressZSTD(data)
	case AlgorithmGzip:
		return decompressGzip(data)
	case AlgorithmNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", c.algorithm)
	}
}

func (c *Codec) compressZSTD(data []byte) ([]byte, error) {
	enc := c.encoderPool.Get().(*zstd.Encoder)
	defer c.encoderPool.Put(enc)

	var buf bytes.Buffer
	enc.Reset(&buf)

	if _, err := enc.Write(data); err != nil {
		return nil, fmt.Errorf("zstd write error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd close error: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Codec) decompressZSTD(data []byte) ([]byte, error) {
	dec := c.decoderPool.Get().(*zstd.Decoder)
	defer c.decoderPool.Put(dec)

	if err := dec.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("zstd reset error: %w", err)
	}
	result, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress error: %w", err)
	}
	return result, nil
}

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("gzip write error: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("gzip close error: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader error: %w", err)
	}
	defer reader.Close()

	result, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress error: %w", err)
	}
	return result, nil
}

// Shared codecs. ZSTD codecs carry encoder/decoder pools, so reads should
// go through these rather than allocating a codec per call.
var (
	DefaultZSTD = NewCodec(AlgorithmZSTD)
	DefaultGzip = NewCodec(AlgorithmGzip)
	DefaultNone = NewCodec(AlgorithmNone)
)

// For returns the shared codec for the algorithm. Unknown algorithms get a
// fresh codec whose Compress/Decompress report the unsupported name.
func For(algorithm Algorithm) *Codec {
	switch algorithm {
	case AlgorithmZSTD:
		return DefaultZSTD
	case AlgorithmGzip:
		return DefaultGzip
	case AlgorithmNone:
		return DefaultNone
	default:
		return NewCodec(algorithm)
	}
}
