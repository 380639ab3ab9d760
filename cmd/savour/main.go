// Package main is the entry point for the savour CLI.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/f3rmion/savour/cmd/savour/cmd"
)

const version = "0.1.0"

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.Root(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
