package main

import (
	"os"

	"github.com/konstruktoid/ansible-lastpass-inventory/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
