// Package imageio turns image files into inline data URIs.
package imageio

import (
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// EncodeDataURI returns data as a base64 data URI.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data uri is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data uri: %w", err)
	}
	return mediaType, data, nil
}

// DeclaredType returns the media type implied by path's extension, or "".
func DeclaredType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mt
}

// IsImagePath reports whether path's declared type matches image/*.
func IsImagePath(path string) bool {
	return strings.HasPrefix(DeclaredType(path), "image/")
}
