package compress

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(`{"title":"Acme fined over emissions","url":"https://example.com"}`, 50))

	for _, algorithm := range []Algorithm{AlgorithmZSTD, AlgorithmGzip, AlgorithmNone} {
		t.Run(string(algorithm), func(t *testing.T) {
			codec := NewCodec(algorithm)

			compressed, err := codec.Compress(payload)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			if algorithm != AlgorithmNone && len(compressed) >= len(payload) {
				t.Errorf("repetitive payload did not shrink: %d >= %d", len(compressed), len(payload))
			}

			restored, err := codec.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(restored, payload) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	codec := NewCodec(Algorithm("lz4"))
	if _, err := codec.Compress([]byte("x")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	if _, err := codec.Decompress([]byte("x")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}

func TestFor_ReturnsSharedCodecs(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		want      *Codec
	}{
		{AlgorithmZSTD, DefaultZSTD},
		{AlgorithmGzip, DefaultGzip},
		{AlgorithmNone, DefaultNone},
	}
	for _, tt := range tests {
		if got := For(tt.algorithm); got != tt.want {
			t.Errorf("For(%s) is not the shared codec", tt.algorithm)
		}
	}
	if For(Algorithm("lz4")).Algorithm() != Algorithm("lz4") {
		t.Error("unknown algorithm should carry its name through")
	}
}

func TestDecompress_CorruptInput(t *testing.T) {
	if _, err := DefaultZSTD.Decompress([]byte("not zstd data")); err == nil {
		t.Error("expected error for corrupt input")
	}
}

func TestConcurrentUse(t *testing.T) {
	payload := []byte(strings.Repeat("abc123", 200))
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				compressed, err := DefaultZSTD.Compress(payload)
				if err != nil {
					t.Errorf("Compress() error = %v", err)
					return
				}
				restored, err := DefaultZSTD.Decompress(compressed)
				if err != nil {
					t.Errorf("Decompress() error = %v", err)
					return
				}
				if !bytes.Equal(restored, payload) {
					t.Error("round trip mismatch")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
