package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/build-flow-labs/cvsscalc/internal/cli"
)

var version = "1.0.0"

func main() {
	root := cli.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ee *cli.ExitError
		if errors.As(err, &ee) {
			os.Exit(ee.Code)
		}
		os.Exit(1)
	}
}
