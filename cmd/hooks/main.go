// Command hooks runs the demo components of the hooks runtime.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hooks/cmd/hooks/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
