package antivirus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubScanner struct {
	name      string
	available bool
	infected  bool
	calls     int
}

func (s *stubScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	s.calls++
	return ScanResult{Infected: s.infected, ScannerName: s.name}
}
func (s *stubScanner) Name() string                       { return s.name }
func (s *stubScanner) Available(ctx context.Context) bool { return s.available }

func TestChainScanner(t *testing.T) {
	ctx := context.Background()

	down := &stubScanner{name: "down"}
	clean := &stubScanner{name: "clean", available: true}
	dirty := &stubScanner{name: "dirty", available: true, infected: true}

	res := NewChainScanner(down, clean).Scan(ctx, "cv.pdf", []byte("%PDF"))
	assert.False(t, res.Rejected())
	assert.Zero(t, down.calls)

	res = NewChainScanner(clean, dirty).Scan(ctx, "cv.pdf", []byte("%PDF"))
	assert.True(t, res.Infected)
	assert.Equal(t, "dirty", res.ScannerName)

	res = NewChainScanner(down).Scan(ctx, "cv.pdf", []byte("%PDF"))
	assert.True(t, res.Rejected())
	assert.ErrorIs(t, res.Error, ErrNoScanner)
}

func TestParseResponse(t *testing.T) {
	base := ScanResult{ScannerName: "clamav"}

	ok := parseResponse(base, "stream: OK\x00")
	assert.False(t, ok.Rejected())

	found := parseResponse(base, "stream: Eicar-Test-Signature FOUND\x00")
	assert.True(t, found.Infected)
	assert.Equal(t, "Eicar-Test-Signature", found.ThreatName)

	failed := parseResponse(base, "INSTREAM size limit exceeded. ERROR")
	assert.True(t, failed.Rejected())
	assert.Error(t, failed.Error)
}
