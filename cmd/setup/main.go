// Command setup creates the signatures table and loads sample signatures.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/petition/internal/core"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n%s\n", err, core.FormatUserError(err))
		os.Exit(1)
	}
}
