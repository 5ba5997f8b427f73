package main

import (
	"os"

	"extractd/internal/extractctl"
)

func main() {
	os.Exit(extractctl.Main())
}
