// Command scmpbpf compiles seccomp filter profiles into classical BPF
// programs and simulates them against synthetic syscall records.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
