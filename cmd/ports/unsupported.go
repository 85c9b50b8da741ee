//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"ports reads the /proc virtual filesystem and is only supported on Linux.",
	)
	os.Exit(1)
}
