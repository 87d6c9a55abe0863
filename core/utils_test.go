package core

import "testing"

func TestCleanString(t *testing.T) {
	if got := CleanString("  Salom  "); got != "Salom" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString("  ADMIN@Test.Test ", true); got != "admin@test.test" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short stays", in: "salom", max: 10, want: "salom"},
		{name: "exact stays", in: "salom", max: 5, want: "salom"},
		{name: "long truncated", in: "assalomu alaykum", max: 8, want: "assalomu..."},
		{name: "multibyte runes", in: "o'zbekcha ta'lim", max: 9, want: "o'zbekcha..."},
		{name: "zero max", in: "salom", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateText(%q, %d) = %q; want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Yangi O'quv Yili", "yangi-oquv-yili"},
		{"  Maqom   Festivali  ", "maqom-festivali"},
		{"a_b-c d", "a-b-c-d"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.in); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rasm.JPG", "JPG"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := FileExt(tt.in); got != tt.want {
			t.Errorf("FileExt(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
