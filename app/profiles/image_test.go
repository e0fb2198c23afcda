package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURL(t *testing.T) {
	testCases := []struct {
		name     string
		assetURL string
		filename string
		expected string
	}{
		{name: "Plain", assetURL: "http://localhost:8000", filename: "a.png", expected: "http://localhost:8000/storage/profile/a.png"},
		{name: "Trailing slash", assetURL: "https://cdn.example.com/", filename: "b.jpg", expected: "https://cdn.example.com/storage/profile/b.jpg"},
		{name: "Relative", assetURL: "", filename: "c.png", expected: "/storage/profile/c.png"},
		{name: "Empty filename", assetURL: "http://localhost:8000", filename: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ImageURL(tc.assetURL, tc.filename))
		})
	}
}
