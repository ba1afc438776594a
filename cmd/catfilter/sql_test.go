package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSQLCommand(t *testing.T) {
	t.Parallel()

	result := runCLI(t, "sql", "price >= 100", "category = Books")

	if result.ExitCode != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", result.ExitCode, result.Stderr)
	}

	want := "SELECT * FROM products WHERE category = $1 AND price >= $2\n" +
		"-- $1 = \"Books\"\n" +
		"-- $2 = 100\n"
	if result.Stdout != want {
		t.Errorf("stdout = %q, want %q", result.Stdout, want)
	}
}

func TestSQLCommandJSON(t *testing.T) {
	t.Parallel()

	result := runCLI(t, "sql", "-j", "--table", "items", "price < 9.99")

	if result.ExitCode != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", result.ExitCode, result.Stderr)
	}

	var parsed struct {
		SQL  string   `json:"sql"`
		Args []string `json:"args"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, result.Stdout)
	}
	if parsed.SQL != "SELECT * FROM items WHERE price < $1" {
		t.Errorf("sql = %q", parsed.SQL)
	}
	if len(parsed.Args) != 1 || parsed.Args[0] != "9.99" {
		t.Errorf("args = %v", parsed.Args)
	}
}

func TestSQLCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "column not listed",
			args:       []string{"sql", "--columns", "price", "category = Books"},
			wantStderr: "invalid filter column",
		},
		{
			name:       "field is not an identifier",
			args:       []string{"sql", "price-usd > 5"},
			wantStderr: "invalid filter column",
		},
		{
			name:       "bad table name",
			args:       []string{"sql", "--table", "items; drop", "price > 5"},
			wantStderr: "invalid table name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := runCLI(t, tt.args...)

			if result.ExitCode != ExitInputError {
				t.Errorf("exit code = %d, want %d", result.ExitCode, ExitInputError)
			}
			if !strings.Contains(result.Stderr, tt.wantStderr) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantStderr, result.Stderr)
			}
		})
	}
}
