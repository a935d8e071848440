package tty2img

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		token string
		want  color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"ff0000", color.RGBA{R: 255, A: 255}},
		{"#F00", color.RGBA{R: 255, A: 255}},
		{"#0a0", color.RGBA{G: 0xaa, A: 255}},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{"black", color.RGBA{A: 255}},
		{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"red", color.RGBA{R: 255, A: 255}},
		{"Red", color.RGBA{R: 255, A: 255}},
		{"brightred", color.RGBA{R: 255, A: 255}},
		{"brightwhite", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseColor(tt.token)
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, token := range []string{"", "#", "#12", "#12345", "#gggggg", "notacolor", "12345", "bad", "ace"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseColor(token)
			var cerr *ColorFormatError
			if !errors.As(err, &cerr) {
				t.Fatalf("ParseColor(%q): expected ColorFormatError, got %v", token, err)
			}
			if cerr.Token != token {
				t.Errorf("Expected token %q in error, got %q", token, cerr.Token)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		token, want string
	}{
		{"ff8800", "#ff8800"},
		{"f80", "f80"},
		{"#f80", "#f80"},
		{"#ff8800", "#ff8800"},
		{"red", "red"},
		{"bad", "bad"},
		{"fed", "fed"},
		{"beige", "beige"},
		{"12345", "12345"},
		{"brightblue", "brightblue"},
	}
	for _, tt := range tests {
		if got := NormalizeColor(tt.token); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestResolveColorDefault(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	for _, token := range []string{DefaultColor, ""} {
		got, err := resolveColor(token, fallback)
		if err != nil {
			t.Fatalf("resolveColor(%q) failed: %v", token, err)
		}
		if got != fallback {
			t.Errorf("resolveColor(%q) = %v, want fallback %v", token, got, fallback)
		}
	}
	got, err := resolveColor("blue", fallback)
	if err != nil || got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("resolveColor(blue) = %v, %v", got, err)
	}
}
