package security

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pdfOfSize(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"))
	return data
}

func TestValidateUpload_Standalone(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		data     []byte
		wantKind error
		wantMsg  string
	}{
		{"2MB pdf too large", MIMEPDF, pdfOfSize(2 << 20), ErrFileTooLarge, "file too large: maximum size is 1MB"},
		{"msword rejected", MIMEDoc, pdfOfSize(500 << 10), ErrFileType, "only PDF files are allowed"},
		{"500KB pdf ok", MIMEPDF, pdfOfSize(500 << 10), nil, ""},
		{"charset parameter ok", "application/pdf; charset=binary", pdfOfSize(1024), nil, ""},
		{"spoofed pdf", MIMEPDF, bytes.Repeat([]byte("A"), 1024), ErrFileSpoofed, "file content does not match its type"},
		{"empty", MIMEPDF, nil, ErrFileEmpty, "file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(StandaloneResumePolicy, tt.mime, tt.data)
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantKind))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateUpload_ProfilePolicyAcceptsUpToFiveMB(t *testing.T) {
	assert.NoError(t, ValidateUpload(ProfileResumePolicy, MIMEPDF, pdfOfSize(4<<20)))
	assert.ErrorIs(t, ValidateUpload(ProfileResumePolicy, MIMEPDF, pdfOfSize(6<<20)), ErrFileTooLarge)
	assert.ErrorIs(t, ValidateUpload(ProfileResumePolicy, "image/png", pdfOfSize(1024)), ErrFileType)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_CV_2024.pdf", SanitizeFilename("My CV 2024.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "cv.pdf", SanitizeFilename(`C:\Users\me\cv.pdf`))
	assert.Equal(t, "resume", SanitizeFilename("..."))
	assert.Len(t, SanitizeFilename(string(bytes.Repeat([]byte("a"), 300))+".pdf"), 100)
}
