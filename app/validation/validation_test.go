package validation

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mytheresa/catalog-admin/app/i18n"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

type storeForm struct {
	Name string `form:"name" validate:"required,max=255"`
}

func TestValidatorStruct(t *testing.T) {
	v := New()

	testCases := []struct {
		name     string
		form     storeForm
		expected Errors
	}{
		{name: "Valid", form: storeForm{Name: "Electronics"}},
		{
			name:     "Missing name",
			form:     storeForm{},
			expected: Errors{"name": {Field: "name", Rule: "required"}},
		},
		{
			name:     "Too long",
			form:     storeForm{Name: strings.Repeat("a", 256)},
			expected: Errors{"name": {Field: "name", Rule: "max", Param: "255"}},
		},
		{name: "Multibyte at limit", form: storeForm{Name: strings.Repeat("é", 255)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs, err := v.Struct(tc.form)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, errs)
		})
	}
}

func TestCheckFile(t *testing.T) {
	imageRule := FileRule{Required: true, Image: true, Mimes: []string{"jpeg", "png", "jpg"}, MaxKB: 1}

	testCases := []struct {
		name         string
		header       func(t *testing.T) *multipart.FileHeader
		rule         FileRule
		expectedRule string
	}{
		{
			name:         "Missing and required",
			header:       func(t *testing.T) *multipart.FileHeader { return nil },
			rule:         imageRule,
			expectedRule: "required",
		},
		{
			name:   "Missing and optional",
			header: func(t *testing.T) *multipart.FileHeader { return nil },
			rule:   FileRule{Image: true},
		},
		{
			name:   "Valid png",
			header: func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "a.png", pngHeader) },
			rule:   imageRule,
		},
		{
			name:   "Valid jpeg with wrong extension",
			header: func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "a.txt", jpegBytes) },
			rule:   imageRule,
		},
		{
			name:         "Not an image",
			header:       func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "a.png", []byte("hello world")) },
			rule:         imageRule,
			expectedRule: "image",
		},
		{
			name:         "Image of disallowed type",
			header:       func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "a.gif", gifBytes) },
			rule:         imageRule,
			expectedRule: "mimes",
		},
		{
			name: "Too large",
			header: func(t *testing.T) *multipart.FileHeader {
				return fileHeader(t, "a.png", append(append([]byte{}, pngHeader...), make([]byte, 2048)...))
			},
			rule:         imageRule,
			expectedRule: "file_max",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			fe, err := CheckFile("image", tc.header(t), tc.rule)

			// Assert
			require.NoError(t, err)
			if tc.expectedRule == "" {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "image", fe.Field)
			assert.Equal(t, tc.expectedRule, fe.Rule)
		})
	}
}

func TestErrorsMessages(t *testing.T) {
	errs := Errors{}
	errs.Add(FieldError{Field: "name", Rule: "required"})
	errs.Add(FieldError{Field: "name", Rule: "max", Param: "255"})
	errs.Add(FieldError{Field: "image", Rule: "mimes", Param: "jpeg,png,jpg"})

	t.Run("Scoped Indonesian", func(t *testing.T) {
		msgs := errs.Messages(i18n.Translator(language.Indonesian), "category")

		assert.Equal(t, "Nama kategori wajib diisi", msgs["name"])
		assert.Equal(t, "File yang diupload harus berformat jpeg, png, jpg", msgs["image"])
	})

	t.Run("Generic English", func(t *testing.T) {
		msgs := errs.Messages(i18n.Translator(language.English), "")

		assert.Equal(t, "The name field is required.", msgs["name"])
		assert.Equal(t, "The image field must be a file of type: jpeg, png, jpg.", msgs["image"])
	})

	assert.Contains(t, errs.Error(), "name: required")
}
