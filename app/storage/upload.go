package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PutUpload stores an uploaded file under dir with a freshly generated
// name and returns that name (without dir). The extension follows the
// detected content, falling back to the client supplied one.
func PutUpload(ctx context.Context, s Storage, dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := detected.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(fh.Filename))
	}

	name := uuid.NewString() + ext
	if err := s.Save(ctx, Key(dir, name), f, detected.String()); err != nil {
		return "", err
	}
	return name, nil
}
