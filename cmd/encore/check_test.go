package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	encore "github.com/alnah/go-encore"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		extra         map[string]string
		remove        []string
		args          func(dir string) []string
		wantCode      int
		wantStdout    []string
		notWantStdout []string
		wantStderr    []string
	}{
		{
			name: "summary without public dir",
			args: func(string) []string { return nil },
			wantStdout: []string{
				"2 entrypoints, 1 integrity hashes",
				"  admin: 2 js, 0 css",
				"  app: 2 js, 1 css",
				"manifest.json: 2 assets",
			},
			notWantStdout: []string{"verified"},
		},
		{
			name:          "selected entry",
			args:          func(string) []string { return []string{"admin"} },
			wantStdout:    []string{"  admin: 2 js, 0 css"},
			notWantStdout: []string{"  app:"},
		},
		{
			name: "public dir verified",
			args: func(dir string) []string {
				return []string{"--public-dir", filepath.Join(dir, "public")}
			},
			wantStdout: []string{"OK: 5 files verified"},
		},
		{
			name:  "integrity mismatch",
			extra: map[string]string{"public/build/app.js": "alert('tampered');"},
			args: func(dir string) []string {
				return []string{"-p", filepath.Join(dir, "public")}
			},
			wantCode:   ExitDocument,
			wantStderr: []string{"FAILED /build/app.js", "integrity mismatch", "hint: the file changed after the build"},
		},
		{
			name:   "missing file",
			remove: []string{"public/build/admin.js"},
			args: func(dir string) []string {
				return []string{"--public-dir", filepath.Join(dir, "public")}
			},
			wantCode:   ExitDocument,
			wantStderr: []string{"FAILED /build/admin.js", "check failed: 1 of 5 files", "hint: --public-dir"},
		},
		{
			name:       "unknown entry",
			args:       func(string) []string { return []string{"shop"} },
			wantCode:   ExitUsage,
			wantStderr: []string{`unknown entrypoint: "shop"`, "available: admin, app"},
		},
		{
			name:       "missing manifest",
			remove:     []string{"public/build/manifest.json"},
			args:       func(string) []string { return nil },
			wantCode:   ExitDocument,
			wantStderr: []string{"document unavailable", "hint:"},
		},
		{
			name:          "quiet success prints nothing",
			args:          func(string) []string { return []string{"-q"} },
			notWantStdout: []string{"entrypoints"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, docFlags := setupBuildDir(t, tt.extra)
			for _, rel := range tt.remove {
				if err := os.Remove(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			env, stdout, stderr := testEnv()
			args := append([]string{"check"}, tt.args(dir)...)
			args = append(args, docFlags...)

			code := run(context.Background(), args, env)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want to contain %q", stdout, want)
				}
			}
			for _, notWant := range tt.notWantStdout {
				if strings.Contains(stdout.String(), notWant) {
					t.Errorf("stdout = %q, should not contain %q", stdout, notWant)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want to contain %q", stderr, want)
				}
			}
		})
	}
}

func TestReferencedFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"entrypoints.json": `{"entrypoints":{
			"app":{"js":["/build/app.js","https://cdn.example.com/lib.js"],"css":["/build/app.css"]},
			"admin":{"js":["/build/app.js","//cdn.example.com/admin.js"]}}}`,
	})
	resolver := encore.New(encore.WithEntrypointsFile(filepath.Join(dir, "entrypoints.json")))
	manifest := encore.ManifestDocument{
		"build/app.js":   "/build/app.js",
		"build/logo.png": "/build/logo.123.png",
		"build/inline":   "data:image/png;base64,AAAA",
	}

	got := referencedFiles(resolver, manifest, []string{"admin", "app"})

	want := []string{"/build/app.css", "/build/app.js", "/build/logo.123.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("referencedFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyFiles_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := verifyFiles(ctx, t.TempDir(), &encore.EntrypointsDocument{}, []string{"/build/app.js"})
	if err != context.Canceled {
		t.Errorf("verifyFiles() error = %v, want context.Canceled", err)
	}
}

func TestVerifyFiles_StaysInPublicDir(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"secret.txt":        "outside",
		"public/build/a.js": "inside",
	})
	publicDir := filepath.Join(dir, "public")

	files := []string{"/build/a.js", "../secret.txt", "/build/../../secret.txt"}
	problems, err := verifyFiles(context.Background(), publicDir, &encore.EntrypointsDocument{}, files)
	if err != nil {
		t.Fatalf("verifyFiles() error = %v", err)
	}

	var got []string
	for _, p := range problems {
		if !errors.Is(p.Err, ErrOutsidePublicDir) {
			t.Errorf("problem for %s = %v, want ErrOutsidePublicDir", p.File, p.Err)
		}
		got = append(got, p.File)
	}
	want := []string{"../secret.txt", "/build/../../secret.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problem files mismatch (-want +got):\n%s", diff)
	}
}
