package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleSource = `package sample

func Add(a, b int) int {
	if a > 0 {
		return a + b
	}
	return b
}
`

func newRootCmd() {
	// rootCmd is a package-level singleton shared across cobra's lifecycle;
	// reset its flags between tests so one test's --config doesn't leak
	// into the next.
	configPath = ""
	scanConcurrency = 0
	scanWorstK = 10
}

func TestScanCommand_PrintsReportWithKnownExitCode(t *testing.T) {
	newRootCmd()
	dir := t.TempDir()
	writeGoFile(t, dir, "sample.go", sampleSource)

	var out bytes.Buffer
	scanCmd.SetOut(&out)
	scanCmd.SetErr(&out)
	err := runScan(scanCmd, []string{dir})

	if err != nil {
		ec, ok := err.(exitCoder)
		require.True(t, ok)
		assert.Contains(t, []int{exitOK, exitViolations, exitThresholdExceeded}, ec.ExitCode())
	}
	assert.Contains(t, out.String(), "anteater scan")
}

func TestRulesListCommand_PrintsActiveRules(t *testing.T) {
	newRootCmd()
	var out bytes.Buffer
	rulesListCmd.SetOut(&out)

	require.NoError(t, runRulesList(rulesListCmd, nil))
	assert.Contains(t, out.String(), "id:")
}

func TestQueryCommand_FindsFunctionAndPrintsTuples(t *testing.T) {
	newRootCmd()
	dir := t.TempDir()
	path := writeGoFile(t, dir, "sample.go", sampleSource)

	var out bytes.Buffer
	queryCmd.SetOut(&out)
	err := runQuery(queryCmd, []string{"EdgeCF", path, "Add"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.String())
}

func TestQueryCommand_UnknownFunctionIsConfigError(t *testing.T) {
	newRootCmd()
	dir := t.TempDir()
	path := writeGoFile(t, dir, "sample.go", sampleSource)

	queryCmd.SetOut(&bytes.Buffer{})
	err := runQuery(queryCmd, []string{"EdgeCF", path, "Missing"})
	require.Error(t, err)
	ec, ok := err.(exitCoder)
	require.True(t, ok)
	assert.Equal(t, exitConfigError, ec.ExitCode())
}

func TestLoadConfig_DefaultsWhenNoPathGiven(t *testing.T) {
	newRootCmd()
	conf, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 20, conf.Thresholds.CyclomaticComplexity)
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	newRootCmd()
	dir := t.TempDir()
	configPath = writeGoFile(t, dir, "anteater.yaml", "thresholds:\n  cyclomaticComplexity: 5\n")

	conf, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, conf.Thresholds.CyclomaticComplexity)
}
