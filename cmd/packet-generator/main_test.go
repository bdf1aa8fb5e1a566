package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/modvar/message"
	"github.com/AgnopraxLab/modvar/utils"
)

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "modvar.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
mutation:
  mutations_per_message: 0
log:
  directory: "`+filepath.Join(dir, "logs")+`"
plan:
  mutations:
    - field: version
      kind: explicit
      value: "9"
`), 0644))

	args := []string{"packet-generator",
		"--type", "ping", "--count", "3", "--seed", "5",
		"--config", cfgFile, "--outdir", dir, "--file", "out.txt", "--verbosity", "1",
	}
	require.NoError(t, initApp().Run(args))

	packets, err := utils.ReadPacketsFromFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	require.Len(t, packets, 3)
	for _, p := range packets {
		body, _, _, err := message.Decode(p)
		require.NoError(t, err)
		assert.Equal(t, uint32(9), body.(*message.PingBody).Version)
	}

	logs, err := os.ReadDir(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestGenerateCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	err := initApp().Run([]string{"packet-generator", "--type", "findnode", "--outdir", dir})
	assert.ErrorContains(t, err, "unknown packet type")

	err = initApp().Run([]string{"packet-generator", "--config", filepath.Join(dir, "missing.yaml")})
	assert.ErrorContains(t, err, "failed to read config file")
}
