package cli

import (
	"testing"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"photo.png", "photo_sorted.png"},
		{"photo.jpg", "photo_sorted.jpg"},
		{"photo.jpeg", "photo_sorted.jpeg"},
		{"dir/sub/photo.png", "photo_sorted.png"},
		{"photo.gif", "photo_sorted.png"},
		{"photo", "photo_sorted.png"},
		{"https://example.com/images/photo.png", "photo_sorted.png"},
		{"https://example.com/photo.png?size=large", "photo_sorted.png"},
		{"https://example.com/photo.png#frag", "photo_sorted.png"},
		{"https://example.com/.png", "image_sorted.png"},
	}

	for _, tt := range tests {
		if got := deriveOutputPath(tt.source); got != tt.want {
			t.Errorf("deriveOutputPath(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
