package main

import (
	"os"

	"github.com/cloudnav/accounttree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
