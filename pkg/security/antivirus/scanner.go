package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when every configured scanner is unreachable.
var ErrNoScanner = errors.New("no antivirus scanner available")

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
	Error       error  // Any error that occurred during scanning
}

// Rejected is true for infected files and for failed scans.
func (r ScanResult) Rejected() bool {
	return r.Infected || r.Error != nil
}

// Scanner is the interface for pluggable antivirus implementations.
// Uploads are rejected on detection, there is no quarantine.
type Scanner interface {
	// Scan checks file content for malware. Errors are reported as Infected (fail closed).
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner always returns clean. Development and tests only.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func NewNoOpScanner() *NoOpScanner {
	return &NoOpScanner{}
}

func (n *NoOpScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	return ScanResult{ScannerName: n.Name()}
}

func (n *NoOpScanner) Name() string {
	return "noop"
}

func (n *NoOpScanner) Available(ctx context.Context) bool {
	return true
}

// ChainScanner runs every available scanner and fails if any detects malware
type ChainScanner struct {
	scanners []Scanner
}

var _ Scanner = (*ChainScanner)(nil)

func NewChainScanner(scanners ...Scanner) *ChainScanner {
	return &ChainScanner{scanners: scanners}
}

func (c *ChainScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	ran := false
	for _, s := range c.scanners {
		if !s.Available(ctx) {
			continue
		}
		ran = true
		if res := s.Scan(ctx, filename, data); res.Rejected() {
			return res
		}
	}
	if !ran {
		// No scanner available - fail closed
		return ScanResult{Infected: true, ScannerName: c.Name(), Error: ErrNoScanner}
	}
	return ScanResult{ScannerName: c.Name()}
}

func (c *ChainScanner) Name() string {
	return "chain"
}

func (c *ChainScanner) Available(ctx context.Context) bool {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
