// Command karto runs the KARTO filter sheet in a terminal and renders
// headless frames of it.
package main

import (
	"os"

	"github.com/karto-app/karto/cmd/karto/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
