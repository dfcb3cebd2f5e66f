// Command bogimport imports Binary Opacity Grid scene folders into an asset root.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run builds the CLI and executes it with args, writing command output to outW.
func run(outW io.Writer, args []string) error {
	return newApp(outW).Run(args)
}
