package validation

import (
	"fmt"
	"mime"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileRule describes the checks applied to an uploaded file, in the
// order required, image, mimes, file_max.
type FileRule struct {
	Required bool
	Image    bool
	// Mimes lists allowed extensions, e.g. "jpeg", "png", "jpg".
	Mimes []string
	// MaxKB is the size limit in kilobytes; zero disables it.
	MaxKB int64
}

var imageTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp", "image/svg+xml",
}

// CheckFile applies rule to the upload in fh, which may be nil when the
// field was not submitted.
func CheckFile(field string, fh *multipart.FileHeader, rule FileRule) (*FieldError, error) {
	if fh == nil || fh.Size == 0 {
		if rule.Required {
			return &FieldError{Field: field, Rule: "required"}, nil
		}
		return nil, nil
	}

	detected, err := detect(fh)
	if err != nil {
		return nil, err
	}

	if rule.Image && !isOneOf(detected, imageTypes) {
		return &FieldError{Field: field, Rule: "image"}, nil
	}

	if len(rule.Mimes) > 0 && !isOneOf(detected, mimesFor(rule.Mimes)) {
		return &FieldError{Field: field, Rule: "mimes", Param: strings.Join(rule.Mimes, ",")}, nil
	}

	if rule.MaxKB > 0 && fh.Size > rule.MaxKB*1024 {
		return &FieldError{Field: field, Rule: "file_max", Param: strconv.FormatInt(rule.MaxKB, 10)}, nil
	}

	return nil, nil
}

func detect(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	m, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect upload %s: %w", fh.Filename, err)
	}
	return m, nil
}

func mimesFor(exts []string) []string {
	types := make([]string, 0, len(exts))
	for _, ext := range exts {
		t := mime.TypeByExtension("." + strings.TrimPrefix(ext, "."))
		if t == "" {
			continue
		}
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		types = append(types, t)
	}
	return types
}

func isOneOf(m *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if m.Is(t) {
			return true
		}
	}
	return false
}
