package errors

import (
	"strings"
	"testing"
)

func TestValidateSourceRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"local path", "images/input.png", false},
		{"url", "https://example.com/photo.jpg", false},
		{"empty", "", true},
		{"null byte", "image\x00.png", true},
		{"control character", "image\n.png", true},
		{"too long", strings.Repeat("a", 2049), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSourceRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"png", "out/sorted.png", false},
		{"jpeg", "sorted.JPEG", false},
		{"jpg", "sorted.jpg", false},
		{"empty", "", true},
		{"unsupported extension", "sorted.gif", true},
		{"no extension", "sorted", true},
		{"control character", "out\x01.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://example.com/a.png"); err != nil {
		t.Errorf("ValidateURL(https) error = %v, want nil", err)
	}
	if err := ValidateURL("ftp://example.com/a.png"); err == nil {
		t.Error("ValidateURL(ftp) error = nil, want error")
	}
	if err := ValidateURL(""); err == nil {
		t.Error("ValidateURL(empty) error = nil, want error")
	}
}

func TestValidatePresetName(t *testing.T) {
	valid := []string{"main", "Kims", "file-edges", "wave_2"}
	for _, name := range valid {
		if err := ValidatePresetName(name); err != nil {
			t.Errorf("ValidatePresetName(%q) error = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "-leading", "has space", "slash/name", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidatePresetName(name); err == nil {
			t.Errorf("ValidatePresetName(%q) error = nil, want error", name)
		}
		if err := ValidatePresetName(name); err != nil && !Is(err, ErrCodeInvalidPreset) {
			t.Errorf("ValidatePresetName(%q) code = %v, want %v", name, GetCode(err), ErrCodeInvalidPreset)
		}
	}
}
