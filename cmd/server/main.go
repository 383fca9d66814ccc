package main

import (
	"os"

	"github.com/youruser/posterapp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
