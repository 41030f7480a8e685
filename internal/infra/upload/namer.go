// Package upload names and stores user-supplied media.
package upload

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	fallbackName = "file"
	randomBound  = 1_000_000_000

	// reservedExt is the suffix fileblob uses for its attribute sidecar files.
	// Keys ending in it cannot be written to a directory bucket.
	reservedExt = ".attrs"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeName replaces every character outside [A-Za-z0-9_.-] with '_'.
// Blank names become "file".
func SanitizeName(original string) string {
	if strings.TrimSpace(original) == "" {
		return fallbackName
	}

	return unsafeNameChars.ReplaceAllString(original, "_")
}

// NewStoredName returns "<unixMillis>-<random>-<sanitized original>".
func NewStoredName(original string, now time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(rand.Int64N(randomBound), 10))
	b.WriteByte('-')
	b.WriteString(avoidReservedExt(SanitizeName(original)))

	return b.String()
}

// IsStoredName reports whether name could have been produced by NewStoredName.
// It guards reads so a request path never reaches outside the bucket.
func IsStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if hasReservedExt(name) {
		return false
	}

	return !unsafeNameChars.MatchString(name)
}

func hasReservedExt(name string) bool {
	return len(name) >= len(reservedExt) && strings.EqualFold(name[len(name)-len(reservedExt):], reservedExt)
}

// avoidReservedExt turns "notes.attrs" into "notes_attrs".
func avoidReservedExt(name string) string {
	if !hasReservedExt(name) {
		return name
	}

	return name[:len(name)-len(reservedExt)] + "_" + name[len(name)-len(reservedExt)+1:]
}
