package core

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// TruncateText cuts `s` down to at most `max` runes and appends "..." when it
// had to cut. Used for card excerpts on the public site.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

var (
	slugStripRegex    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRegex = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lowers `s` and reduces it to hyphen-separated word characters.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count for humans, 1024-based.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(fileSizeUnits) {
		i = len(fileSizeUnits) - 1
	}
	size := float64(bytes) / math.Pow(1024, float64(i))
	s := fmt.Sprintf("%.2f", size)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " " + fileSizeUnits[i]
}

// FileExt returns the extension of `name` without the leading dot.
func FileExt(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}
