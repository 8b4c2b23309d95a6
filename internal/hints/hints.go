// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-encore/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI environment variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForDocumentUnavailable returns hints for a missing or unreadable
// entrypoints.json or manifest.json. envVar names the variable that
// overrides the path.
func ForDocumentUnavailable(path, envVar string) string {
	hints := []string{"run the Encore build (e.g. npm run build) to generate " + filepath.Base(path)}

	if inCI() {
		hints = append(hints, "in CI, build assets before this step")
	} else if IsInContainer() {
		hints = append(hints, "mount the build output directory into the container")
	}

	if envVar != "" && os.Getenv(envVar) == "" {
		hints = append(hints, "set "+envVar+" if the file lives elsewhere")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first user config path, if one was searched
	marker := string(filepath.Separator) + "go-encore" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownEntry returns hints for entrypoint names absent from
// entrypoints.json.
func ForUnknownEntry(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForIntegrityMismatch returns hints for files whose content no longer
// matches the hash recorded in entrypoints.json.
func ForIntegrityMismatch() string {
	return format("the file changed after the build; rebuild assets or check --public-dir")
}

// ForPublicDir returns hints for referenced files missing from the public directory.
func ForPublicDir() string {
	return format("--public-dir must be the web root the build paths are relative to")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
