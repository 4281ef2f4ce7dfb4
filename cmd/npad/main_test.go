package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "npad" {
		t.Errorf("Expected root command use to be 'npad', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"evaluate",
		"validate",
		"presets",
		"compare",
		"sensitivity",
		"break-even",
		"serve",
		"version",
	}

	registered := make(map[string]bool)
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		if !registered[name] {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestEvaluate_DefaultPreset(t *testing.T) {
	out, err := execute(t, "evaluate")
	require.NoError(t, err)

	assert.Contains(t, out, "$836.93")
	assert.Contains(t, out, "$8,528.38")
	assert.Contains(t, out, "NET % OF ALLOWED")
}

func TestEvaluate_OverridesAsCSV(t *testing.T) {
	out, err := execute(t, "evaluate", "--set", "discount_rate=0", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Case,AllowedAmount"))
	assert.Contains(t, lines[1], "847.60")
}

func TestEvaluate_Amounts(t *testing.T) {
	out, err := execute(t, "evaluate", "--small", "$3000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "3000.00")

	_, err = execute(t, "evaluate", "--small", "lots")
	assert.Error(t, err)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"evaluate", "--format", "pdf"}, "unsupported format"},
		{"unknown preset", []string{"evaluate", "--preset", "nope"}, "unknown preset"},
		{"unknown override", []string{"evaluate", "--set", "speed=1"}, "unknown assumption"},
		{"out of range override", []string{"evaluate", "--set", "actuarial_value=2"}, "actuarial_value"},
		{"missing file", []string{"evaluate", "missing.yaml"}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEvaluate_FileAndPresetConflict(t *testing.T) {
	path := writeConfig(t)
	_, err := execute(t, "evaluate", path, "--preset", "tpa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--preset cannot be combined")
}

func TestEvaluate_AmountsWithFileCases(t *testing.T) {
	path := writeConfig(t)

	for _, flag := range []string{"--small", "--large"} {
		_, err := execute(t, "evaluate", path, flag, "2500")
		require.Error(t, err, flag)
		assert.Contains(t, err.Error(), "lists its own cases")
	}

	// a file without cases is sized by the flags
	noCases := filepath.Join(t.TempDir(), "assumptions.yaml")
	require.NoError(t, os.WriteFile(noCases, []byte("assumptions:\n  discount_rate: 0.05\n"), 0644))
	out, err := execute(t, "evaluate", noCases, "--small", "2500", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "2500.00")
}

func TestEvaluate_FileUsesSettingsReviewPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ed.yaml")
	content := "cases:\n  - label: ED visit\n    allowed_amount: 3000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// 3000 is above the default 2000 ceiling: inpatient cost
	out, err := execute(t, "evaluate", path, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "ED visit,3000.00,215.00")

	t.Setenv("NPAD_REVIEW_POLICY_SMALL_CASE_CEILING", "4000")
	out, err = execute(t, "evaluate", path, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "ED visit,3000.00,61.00")
}

func TestValidate(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 cases)")

	_, err = execute(t, "validate")
	assert.Error(t, err, "validate needs a file")
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "hospital-cfo")
	assert.Contains(t, out, "stop-loss")

	out, err = execute(t, "presets", "show", "tpa")
	require.NoError(t, err)
	assert.Contains(t, out, "(tpa)")
	assert.Contains(t, out, "REVIEW COST PER ENCOUNTER")

	out, err = execute(t, "presets", "show", "tpa", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "assumptions:")

	_, err = execute(t, "presets", "show", "nope")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--with", "tpa,zero_discount", "--format", "csv")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "zero_discount")

	_, err = execute(t, "compare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with needs at least one")
}

func TestSensitivity(t *testing.T) {
	out, err := execute(t, "sensitivity", "--param", "discount_rate", "--min", "0", "--max", "0.16", "--steps", "3", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header plus two cases at each of three points
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "parameter_name"))

	_, err = execute(t, "sensitivity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--param is required")
}

func TestBreakEven(t *testing.T) {
	out, err := execute(t, "break-even", "--param", "discount_rate", "--target", "84")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = execute(t, "break-even", "--target", "84")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--param is required")

	_, err = execute(t, "break-even", "--param", "discount_rate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--target is required")

	_, err = execute(t, "break-even", "--param", "discount_rate", "--target", "84", "--goal", "fastest")
	assert.Error(t, err)
}

func TestParseParams(t *testing.T) {
	assert.Equal(t, []string{"discount_rate", "place_frac"}, parseParams(" discount_rate, place_frac ,"))
	assert.Equal(t, []string{"all"}, parseParams("discount_rate,ALL"))
	assert.Empty(t, parseParams(""))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	if !strings.HasPrefix(out, "npad dev") {
		t.Errorf("Expected version output to start with 'npad dev', got %q", out)
	}
}

func TestInvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	if err == nil {
		t.Error("Expected error for invalid command")
	}

	_, err = execute(t, "evaluate", "--invalid-flag")
	if err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestReportExt(t *testing.T) {
	assert.Equal(t, "txt", reportExt("console"))
	assert.Equal(t, "txt", reportExt("verbose"))
	assert.Equal(t, "html", reportExt("html"))
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.yaml")
	content := `
assumptions:
  discount_rate: 0.05
cases:
  - label: ED visit
    allowed_amount: 800
  - label: Knee replacement
    allowed_amount: 30000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
