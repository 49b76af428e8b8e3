package config

import (
	"bufio"
	"os"
	"strings"
)

// LoadDotEnv overlays KEY=VALUE pairs from a dotenv file onto the process
// environment. Variables already set win over file values; a deployment
// exporting real credentials is never overridden by a leftover development
// file. A missing file is not an error. Lines without a "=" are skipped,
// as are blanks and comments.
func LoadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if key == "" || os.Getenv(key) != "" {
			continue
		}

		_ = os.Setenv(key, value)
	}
}
