package main

// Notes:
// - run: we test dispatch and exit codes for every command. Command
//   behavior is covered in the per-command test files.
// - main: not tested directly (calls os.Exit).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no args prints usage",
			args:       nil,
			wantCode:   ExitUsage,
			wantStderr: "Usage: encore <command>",
		},
		{
			name:       "version",
			args:       []string{"version"},
			wantCode:   ExitSuccess,
			wantStdout: "encore " + Version,
		},
		{
			name:       "--version",
			args:       []string{"--version"},
			wantCode:   ExitSuccess,
			wantStdout: "encore ",
		},
		{
			name:       "help",
			args:       []string{"help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help render",
			args:       []string{"help", "render"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: encore render",
		},
		{
			name:       "help unknown command",
			args:       []string{"help", "deploy"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: deploy",
		},
		{
			name:       "unknown command",
			args:       []string{"deploy"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: deploy",
		},
		{
			name:       "command --help",
			args:       []string{"check", "--help"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: encore check",
		},
		{
			name:       "bad flag",
			args:       []string{"render", "--nope"},
			wantCode:   ExitUsage,
			wantStderr: "Run 'encore help render'",
		},
		{
			name:       "render without input",
			args:       []string{"render"},
			wantCode:   ExitIO,
			wantStderr: "no input specified",
		},
		{
			name:       "integrity without files",
			args:       []string{"integrity"},
			wantCode:   ExitIO,
			wantStderr: "no input specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := run(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"render", "page.html"}, false},
		{[]string{"render", "-v", "page.html"}, true},
		{[]string{"check", "--verbose"}, true},
		{[]string{"check", "--verbose=false"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
