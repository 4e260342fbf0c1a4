package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.GO/core/registry"
)

func TestRegistry_Register_Apply(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd) })

	out := &bytes.Buffer{}
	testCmd := &cobra.Command{
		Use: "test:registry",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("ok")
		},
	}
	Register(testCmd)
	Apply()

	assert.True(t, registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd))
	assert.Panics(t, func() { Register(&cobra.Command{Use: "late"}) })

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"test:registry"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ok", out.String())
}

func TestRegistry_BuiltinCommands(t *testing.T) {
	Apply()
	for _, use := range []string{"serve", "activities:list", "cron:start"} {
		c, _, err := rootCmd.Find([]string{use})
		require.NoError(t, err, use)
		assert.Equal(t, use, c.Use)
	}
	before := len(rootCmd.Commands())
	Apply()
	assert.Len(t, rootCmd.Commands(), before)
}

func TestActivitiesList_DefaultSeed(t *testing.T) {
	Apply()
	t.Cleanup(func() { seedFile = "" })
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"activities:list"})
	require.NoError(t, rootCmd.Execute())

	s := out.String()
	assert.Contains(t, s, "ACTIVITY")
	assert.Contains(t, s, "Chess Club")
	assert.Contains(t, s, "2/12")
	assert.Contains(t, s, "michael@mergington.edu, daniel@mergington.edu")
}

func TestActivitiesList_InvalidSeed(t *testing.T) {
	Apply()
	t.Cleanup(func() { seedFile = "" })
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Chess Club\n  max_participants: 0\n"), 0o644))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"activities:list", "--seed", path})
	assert.Error(t, rootCmd.Execute())
}
