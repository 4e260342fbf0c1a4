package cmd

import (
	"sync"

	"github.com/spf13/cobra"

	"mergington.GO/core/registry"
)

var mu sync.Mutex

func commands() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a subcommand of the root command. Built-in commands use it from init;
// it panics once Apply has run.
func Register(c *cobra.Command) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(commands(), c))
}

// Apply attaches queued commands to root and locks the registry. Commands attached by an
// earlier Apply are skipped.
func Apply() {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range commands() {
		if !c.HasParent() {
			rootCmd.AddCommand(c)
		}
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
