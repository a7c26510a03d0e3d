//go:build tools

package main

// Build-time tool dependencies, kept out of the binary.
import (
	_ "github.com/dmarkham/enumer"
)
