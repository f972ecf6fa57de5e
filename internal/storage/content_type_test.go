package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n")

	tests := []struct {
		name     string
		provided string
		filename string
		data     []byte
		want     string
	}{
		{"provided type wins", "image/webp", "label.png", pngHeader, "image/webp"},
		{"extension fallback", "", "label.png", nil, "image/png"},
		{"extension is case insensitive", "", "LABEL.PNG", nil, "image/png"},
		{"sniffs content", "", "label", pngHeader, "image/png"},
		{"octet-stream when nothing matches", "", "label", nil, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data *bytes.Reader
			if tt.data != nil {
				data = bytes.NewReader(tt.data)
			}

			var got string
			if data != nil {
				got = DetectContentType(tt.provided, tt.filename, data)
			} else {
				got = DetectContentType(tt.provided, tt.filename, nil)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAllowedImageType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"image/webp", true},
		{"image/heic", true},
		{"IMAGE/PNG", true},
		{"image/png; charset=binary", true},
		{"image/gif", false},
		{"image/svg+xml", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedImageType(tt.contentType))
		})
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/gif"))
	assert.True(t, IsImage("image/png; charset=binary"))
	assert.False(t, IsImage("text/html"))
}

func TestExtensionForContentType(t *testing.T) {
	assert.Equal(t, ".jpg", extensionForContentType("image/jpeg"))
	assert.Equal(t, ".webp", extensionForContentType("image/webp"))
	assert.Equal(t, ".bin", extensionForContentType("application/x-unknown-thing"))
}
