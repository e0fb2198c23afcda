package profiles

import "strings"

// ImageURL builds the public URL of a stored profile image. An empty
// filename yields an empty URL; existence is not checked.
func ImageURL(assetURL, filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimRight(assetURL, "/") + "/storage/" + ImageDir + "/" + filename
}
