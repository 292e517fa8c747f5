// Package main provides the CLI for the Loom blueprint compiler.
package main

import "github.com/loomworks/loom/internal/cli"

func main() {
	cli.Execute()
}
