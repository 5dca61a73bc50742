package main

import (
	"os"

	"github.com/kcaldas/treepeek/cmd/cli"
	"github.com/kcaldas/treepeek/pkg/version"
)

func main() {
	cli.RootCmd.SetVersionTemplate(version.GetInfo().String() + "\n")
	if err := cli.RootCmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
