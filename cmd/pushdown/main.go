package main

import (
	"os"

	"github.com/hugr-lab/pushdown-go/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
