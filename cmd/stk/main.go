// Command stk is the supertree toolkit command line.
package main

import (
	"os"

	"github.com/supertree-toolkit/stk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
