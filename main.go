package main

import (
	"os"

	"github.com/interviewdost/interviewdost-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
