// Package main is the single-binary entrypoint for plaisir.
// One binary for the CLI and the local API server.
package main

import "github.com/plaisir-app/plaisir/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
