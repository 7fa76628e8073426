// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the SecureTalk settings panel.
//
// Usage:
//
//	go run . [flags]
//	./securetalk [flags]
//
// This launches the SecureTalk CLI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/quietwire/securetalk/ui/cli"
)

// main is the entrypoint for the SecureTalk CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("SecureTalk CLI error: %v", err)
		os.Exit(1)
	}
}
