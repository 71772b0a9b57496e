package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}
