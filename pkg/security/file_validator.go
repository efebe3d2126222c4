package security

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDoc  = "application/msword"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrFileEmpty    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file too large")
	ErrFileType     = errors.New("file type not allowed")
	ErrFileSpoofed  = errors.New("file content does not match its declared type")
)

// UploadPolicy restricts the declared type, size and sniffed content of an upload.
type UploadPolicy struct {
	MaxBytes    int64
	Allowed     []string // declared MIME types
	TypeMessage string
}

var (
	// ProfileResumePolicy applies to resumes submitted with the profile form.
	ProfileResumePolicy = UploadPolicy{
		MaxBytes:    5 << 20,
		Allowed:     []string{MIMEPDF, MIMEDoc, MIMEDocx},
		TypeMessage: "only PDF, DOC or DOCX files are allowed",
	}

	// StandaloneResumePolicy applies to the dedicated resume upload endpoint.
	StandaloneResumePolicy = UploadPolicy{
		MaxBytes:    1 << 20,
		Allowed:     []string{MIMEPDF},
		TypeMessage: "only PDF files are allowed",
	}
)

// Magic byte signatures keyed by declared MIME type
var magicBytes = map[string][][]byte{
	MIMEPDF:  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	MIMEDoc:  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	MIMEDocx: {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Sniffed types accepted for each declared type. Older sniffers report DOC/DOCX as their containers.
var sniffedAliases = map[string][]string{
	MIMEPDF:  {MIMEPDF},
	MIMEDoc:  {MIMEDoc, "application/x-ole-storage"},
	MIMEDocx: {MIMEDocx, "application/zip"},
}

// UploadError carries the user-facing message of a rejected upload.
type UploadError struct {
	Kind    error
	Message string
}

func (e *UploadError) Error() string { return e.Message }
func (e *UploadError) Unwrap() error { return e.Kind }

// ValidateUpload checks declared type, size, then content.
func ValidateUpload(p UploadPolicy, declaredMIME string, data []byte) error {
	declared := normalizeMIME(declaredMIME)
	if !contains(p.Allowed, declared) {
		return &UploadError{Kind: ErrFileType, Message: p.TypeMessage}
	}

	if len(data) == 0 {
		return &UploadError{Kind: ErrFileEmpty, Message: "file is empty"}
	}
	if int64(len(data)) > p.MaxBytes {
		return &UploadError{Kind: ErrFileTooLarge, Message: fmt.Sprintf("file too large: maximum size is %s", humanSize(p.MaxBytes))}
	}

	if !validateMagicBytes(declared, data) {
		return &UploadError{Kind: ErrFileSpoofed, Message: "file content does not match its type"}
	}

	detected := mimetype.Detect(data)
	for _, alias := range sniffedAliases[declared] {
		if detected.Is(alias) {
			return nil
		}
	}
	return &UploadError{Kind: ErrFileSpoofed, Message: "file content does not match its type"}
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(mime string, data []byte) bool {
	signatures, ok := magicBytes[mime]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename keeps the base name with only [A-Za-z0-9._-], capped at 100 chars.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "resume"
	}
	if len(base) > 100 {
		ext := filepath.Ext(base)
		if len(ext) > 10 {
			ext = ""
		}
		base = base[:100-len(ext)] + ext
	}
	return base
}

func normalizeMIME(m string) string {
	if i := strings.Index(m, ";"); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%dKB", n>>10)
}
