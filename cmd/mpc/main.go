package main

import (
	"os"

	"github.com/msto63/mPC/cmd/mpc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
