package main

import (
	"fmt"
	"os"

	"github.com/shapestone/shape-escsv/cmd/escsv/app"
)

func main() {
	if err := app.NewEscsvCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
