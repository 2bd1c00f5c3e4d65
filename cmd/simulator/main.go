package main

import (
	"fmt"
	"os"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
