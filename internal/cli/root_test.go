package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	return names
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3")

	require.NotNil(t, cmd)
	assert.Equal(t, "tickwatch", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.Contains(t, commandNames(cmd), "daemon")
	assert.Contains(t, commandNames(cmd), "watch")
	assert.Contains(t, commandNames(cmd), "config")
	assert.Contains(t, commandNames(cmd), "cache")
	assert.Contains(t, commandNames(cmd), "setup")
}

func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd("dev")

	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config-dir"))
	assert.NotNil(t, cmd.Flags().Lookup("refresh"))

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "table", output.DefValue)
}

func TestConfigCommandGroup(t *testing.T) {
	cmd := newConfigCmd()

	assert.Contains(t, commandNames(cmd), "init")
	assert.Contains(t, commandNames(cmd), "validate")
}

func TestCacheCommandGroup(t *testing.T) {
	cmd := newCacheCmd()

	assert.Contains(t, commandNames(cmd), "status")
	assert.Contains(t, commandNames(cmd), "clear")
}

func TestWatchCmdIntervalFlag(t *testing.T) {
	cmd := NewWatchCmd()

	flag := cmd.Flags().Lookup("interval")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}
