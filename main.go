package main

import (
	"os"

	"github.com/dirgraph/dirgraph/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
