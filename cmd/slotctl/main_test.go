package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/eckslotgo/internal/provisioning"
)

const cellYAML = `cellNumber: 1
aisleStart: 1
aisleEnd: 3
startLocationType: odd
endLocationType: even
locationsPerAisle: 10
levelCount: 2
hasPicking: true
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--output-format", "text"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCellFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCellConfig(t *testing.T) {
	cfg, err := loadCellConfig(writeCellFile(t, cellYAML))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.CellNumber)
	assert.Equal(t, provisioning.LocationsOdd, cfg.StartLocationType)
	assert.Equal(t, 10, cfg.LocationsPerAisle)
	assert.True(t, cfg.HasPicking)

	_, err = loadCellConfig(writeCellFile(t, cellYAML+"unknownField: 1\n"))
	assert.Error(t, err)

	_, err = loadCellConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "4-16-26-0")
	require.NoError(t, err)
	assert.Contains(t, out, "4-016-0026-00")
	assert.Contains(t, out, "even side")
	assert.Contains(t, out, "(picking)")

	_, err = run(t, "parse", "4-16-26-15")
	assert.Error(t, err)
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "format", "1", "5", "54", "20")
	require.NoError(t, err)
	assert.Equal(t, "1-005-0054-20\n", out)

	_, err = run(t, "format", "1", "5", "x", "20")
	assert.Error(t, err)
}

func TestPlanCommand(t *testing.T) {
	out, err := run(t, "plan", "-f", writeCellFile(t, cellYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Aisle 001: odd locations")
	assert.Contains(t, out, "Aisle 003: even locations")
	assert.Contains(t, out, "Levels: 00 (picking), 10")
	assert.Contains(t, out, "Locations: 40")
}

func TestRenderFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "yaml", map[string]int{"locations": 40}, nil))
	assert.Equal(t, "locations: 40\n", buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, "json", map[string]int{"locations": 40}, nil))
	assert.JSONEq(t, `{"locations":40}`, buf.String())

	assert.Error(t, render(&buf, "xml", nil, nil))
}
