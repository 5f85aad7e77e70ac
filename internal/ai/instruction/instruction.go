package instruction

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
)

//go:embed system_instruction.md
var defaultText string

// Default returns the system instruction compiled into the binary.
func Default() string {
	return defaultText
}

// Load returns the contents of path, or the embedded instruction when path is empty.
func Load(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read system instruction")
	}
	text := string(b)
	if strings.TrimSpace(text) == "" {
		return "", errors.Errorf("system instruction %s is empty", path)
	}
	return text, nil
}
