// Package main provides foodgramctl, the Foodgram operator command line.
package main

import (
	"fmt"
	"os"

	"github.com/foodgramapp/foodgram-server/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
