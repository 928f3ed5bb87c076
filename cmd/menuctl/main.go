// menuctl manages and queries the local menu catalog from the command line.
package main

import (
	"os"

	"menu_agent/cmd/menuctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
