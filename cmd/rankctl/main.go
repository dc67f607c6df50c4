// Package main provides the entry point for the rankctl CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/rankcore/cmd/rankctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
