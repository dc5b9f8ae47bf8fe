// Package main is the orient CLI command itself.
package main

import (
	"os"

	"github.com/rigidmotion/orient/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		cli.Errorf(os.Stderr, "%v", err)
	}
}
