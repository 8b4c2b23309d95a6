package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Build documents shared by the command tests.
const (
	testEntrypointsJSON = `{
  "entrypoints": {
    "app": {
      "js": ["/build/runtime.js", "/build/app.js"],
      "css": ["/build/app.css"]
    },
    "admin": {
      "js": ["/build/runtime.js", "/build/admin.js"]
    }
  },
  "integrity": {
    "/build/app.js": "sha384-H8BRh8j48O9oYatfu5AZzq6A9RINhZO5H16dQZngK7T62em8MUt1FLm52t+eX6xO"
  }
}`

	testManifestJSON = `{
  "build/app.js": "/build/app.js",
  "build/images/logo.png": "/build/images/logo.png"
}`

	// testAppJS matches testIntegrity, recorded for /build/app.js.
	testAppJS     = "alert('Hello, world.');"
	testIntegrity = "sha384-H8BRh8j48O9oYatfu5AZzq6A9RINhZO5H16dQZngK7T62em8MUt1FLm52t+eX6xO"
)

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map slash-separated paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// setupBuildDir creates a project with an Encore build under public/build.
// Returns the project directory and the document flags pointing at it.
func setupBuildDir(t *testing.T, extra map[string]string) (string, []string) {
	t.Helper()
	files := map[string]string{
		"public/build/entrypoints.json": testEntrypointsJSON,
		"public/build/manifest.json":    testManifestJSON,
		"public/build/app.js":           testAppJS,
		"public/build/runtime.js":       "/* runtime */",
		"public/build/admin.js":         "/* admin */",
		"public/build/app.css":          "body{}",
		"public/build/images/logo.png":  "PNG",
	}
	for k, v := range extra {
		files[k] = v
	}
	dir := setupTestDir(t, files)

	docFlags := []string{
		"--entrypoints", filepath.Join(dir, "public", "build", "entrypoints.json"),
		"--manifest", filepath.Join(dir, "public", "build", "manifest.json"),
	}
	return dir, docFlags
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
