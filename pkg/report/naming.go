package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// SanitizeName replaces everything but letters and digits with underscores
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// RunDirName builds the per-run output folder name,
// e.g. The_Threshold_Gambit_v1_fixed_Thresh50_20240131_154500
func RunDirName(name, agentType string, threshold int, t time.Time) string {
	return fmt.Sprintf("%s_%s_Thresh%d_%s", SanitizeName(name), agentType, threshold, t.Format("20060102_150405"))
}

// maxRunDirAttempts bounds the numeric suffixes tried by CreateRunDir
const maxRunDirAttempts = 1000

// CreateRunDir creates a new folder named name under base. If that folder
// already exists, e.g. from another run started in the same second, a
// suffix _2, _3, ... is appended until an unused name is found. An
// existing folder is never reused.
func CreateRunDir(base, name string) (string, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("create output base %s: %w", base, err)
	}
	for i := 1; i <= maxRunDirAttempts; i++ {
		dir := filepath.Join(base, name)
		if i > 1 {
			dir = filepath.Join(base, fmt.Sprintf("%s_%d", name, i))
		}
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create run directory: %w", err)
		}
	}
	return "", fmt.Errorf("no free run directory for %s after %d attempts", name, maxRunDirAttempts)
}
