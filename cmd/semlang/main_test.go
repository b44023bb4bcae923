package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semlang/semlang/internal/config"
	"github.com/semlang/semlang/internal/lexer"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SEMLANG_LOG_LEVEL", "SEMLANG_FORMAT", "SEMLANG_MAX_ERRORS", "SEMLANG_WORKERS"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolateEnv(t)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	args = append(args, "--config", filepath.Join(t.TempDir(), config.FileName), "--log-level", "error")
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWriteTokens(t *testing.T) {
	toks, errs := lexer.Tokenize("x: int;")
	require.Empty(t, errs)

	var buf bytes.Buffer
	writeTokens(&buf, toks)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(toks))
	assert.Equal(t, []string{"1:1", "IDENT", "x"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1:4", "IDENT", "int"}, strings.Fields(lines[2]))
	assert.Equal(t, "EOF", strings.Fields(lines[len(lines)-1])[1])
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name    string
		flags   globalFlags
		want    func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name:  "defaults when no flags are set",
			flags: globalFlags{maxErrors: -1},
			want: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.FormatText, cfg.Format)
				assert.Equal(t, 0, cfg.MaxErrors)
			},
		},
		{
			name:  "flags override the file",
			flags: globalFlags{format: "json", logLevel: "debug", maxErrors: 3},
			want: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.FormatJSON, cfg.Format)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, 3, cfg.MaxErrors)
			},
		},
		{
			name:    "invalid format",
			flags:   globalFlags{format: "xml", maxErrors: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := tt.flags
			flags.configPath = filepath.Join(t.TempDir(), config.FileName)

			cfg, _, err := loadConfig(newRootCmd(), &flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.sem", "f(): int { return 1; };")
	bad := writeSource(t, dir, "bad.sem", "f(): int { return ; };")

	out, _, err := execute(t, "check", good)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = execute(t, "check", good, bad)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "error[")
	assert.Contains(t, out, "bad.sem")
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.sem", "f(): int { return ; };")

	out, _, err := execute(t, "check", bad, "--format", "json")
	assert.ErrorIs(t, err, errDiagnostics)

	var ds []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	require.Len(t, ds, 1)
	assert.Equal(t, "parser", ds[0]["stage"])
}

func TestCheckCommandWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.sem", "f(): int { return 1; };")
	writeSource(t, dir, "notes.txt", "not source at all {")

	out, _, err := execute(t, "check", dir, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestParseCommandPrintsTree(t *testing.T) {
	path := writeSource(t, t.TempDir(), "p.sem", "f(): int {\n  return 1;\n};")

	out, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "return 1;")
}

func TestParseCommandReportsDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "p.sem", "f(): int { return ; };")

	out, errOut, err := execute(t, "parse", path)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "<bad>")
	assert.Contains(t, errOut, "error[")
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.sem", "use geo;")

	out, _, err := execute(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, out, "USE")
	assert.Contains(t, out, "geo")
	assert.Contains(t, out, "EOF")
}

func TestTokensCommandReportsLexerErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.sem", "x: string = \"open")

	_, errOut, err := execute(t, "tokens", path)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, errOut, "LEXER_UNTERMINATED_STRING")
	assert.Contains(t, errOut, filepath.Base(path)+":1:13")
}
