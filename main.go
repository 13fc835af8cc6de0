package main

import (
	"os"

	"libros-circulares/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
