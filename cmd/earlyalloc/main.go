// Command earlyalloc replays allocation scripts against an early arena and
// prints how the byte and page cursors move.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
