package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// readUpload reads an optional multipart file. Non-multipart requests carry no file.
// At most limit+1 bytes are kept so an oversized file still fails size validation
// without being buffered in full.
func readUpload(c *gin.Context, field string, limit int64) (*domain.UploadedFile, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.BadRequest("Invalid multipart form")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.BadRequest("Unable to read " + field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, apperror.BadRequest("Unable to read " + field)
	}
	return &domain.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}

// bindProfileDraft accepts either a JSON body or a multipart form whose "profile"
// field holds the JSON draft next to an optional "resume" file.
func bindProfileDraft(c *gin.Context) (*domain.ProfileDraft, error) {
	var draft domain.ProfileDraft

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		raw := c.PostForm("profile")
		if raw == "" {
			return nil, apperror.BadRequest("profile form field is required")
		}
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			return nil, apperror.BadRequest("profile is not valid JSON")
		}
		return &draft, nil
	}

	if err := c.ShouldBindJSON(&draft); err != nil {
		return nil, apperror.BadRequest("Invalid request body")
	}
	return &draft, nil
}
