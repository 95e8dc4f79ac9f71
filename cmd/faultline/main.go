package main

import (
	"os"

	"github.com/getfaultline/faultline-go/cmd/faultline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
