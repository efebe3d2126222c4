package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ClamAVScanner connects to the clamd daemon for malware scanning
type ClamAVScanner struct {
	address string        // TCP address (host:port) or Unix socket path
	timeout time.Duration // Connection and scan timeout
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a ClamAV scanner.
// address: TCP "localhost:3310" or Unix socket "/var/run/clamav/clamd.sock"
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	return conn, nil
}

// Available checks if the ClamAV daemon answers PING
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err = conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Scan streams the file with the zINSTREAM command
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to connect to clamd: %w", err)
		return result
	}
	defer conn.Close()

	if _, err = conn.Write([]byte("zINSTREAM\x00")); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to send command: %w", err)
		return result
	}

	// One chunk: big-endian uint32 size, payload, then a zero-length terminator
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(data)))
	for _, part := range [][]byte{size, data, {0, 0, 0, 0}} {
		if _, err = conn.Write(part); err != nil {
			result.Infected = true
			result.Error = fmt.Errorf("failed to stream file: %w", err)
			return result
		}
	}

	response := make([]byte, 1024)
	n, err := conn.Read(response)
	if err != nil && err != io.EOF {
		result.Infected = true
		result.Error = fmt.Errorf("failed to read response: %w", err)
		return result
	}

	return parseResponse(result, string(response[:n]))
}

// parseResponse interprets "stream: OK", "stream: <name> FOUND" and "... ERROR".
func parseResponse(result ScanResult, raw string) ScanResult {
	resp := strings.TrimRight(strings.TrimSpace(raw), "\x00")

	switch {
	case strings.HasSuffix(resp, "FOUND"):
		result.Infected = true
		if parts := strings.SplitN(resp, ":", 2); len(parts) == 2 {
			result.ThreatName = strings.TrimSuffix(strings.TrimSpace(parts[1]), " FOUND")
		}
	case strings.HasSuffix(resp, "ERROR"):
		result.Infected = true
		result.Error = fmt.Errorf("scan error: %s", resp)
	case strings.HasSuffix(resp, "OK"):
	default:
		result.Infected = true
		result.Error = fmt.Errorf("unexpected clamd response: %q", resp)
	}
	return result
}
