//go:build cli

package main

import (
	"mergington.GO/cmd"
	"mergington.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
