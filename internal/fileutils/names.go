package fileutils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SecureFilename reduces an attachment or upload name to a form safe to use
// as a filesystem name: path components are stripped and anything outside
// [A-Za-z0-9_.-] collapses to an underscore. An empty result falls back to
// the given default.
func SecureFilename(name, fallback string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return fallback
	}
	return name
}

// UniqueOutputName returns a fresh container output name of the form
// updated_<timestamp>_<token>.pdf. The random token makes repeated builds
// within the same second collision-free, so callers never need locking
// around output paths.
func UniqueOutputName(now time.Time) string {
	ts := now.Format("20060102_150405")
	token := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("updated_%s_%s.pdf", ts, token)
}
