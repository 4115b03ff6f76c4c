// cmd/modpoll/print.go
package main

import (
	"fmt"
	"io"

	"github.com/tamzrod/modpoll/internal/poller"
)

// printResult writes one successful result.
// Addresses count up from the request start address.
func printResult(w io.Writer, res poller.PollResult) {
	if res.FC.IsWrite() {
		fmt.Fprintf(w, "written %d item(s) at %d\n", res.Quantity, res.Address)
		return
	}

	if res.FC.IsBits() {
		for i, b := range res.Bits {
			v := 0
			if b {
				v = 1
			}
			fmt.Fprintf(w, "[%d]: %d\n", int(res.Address)+i, v)
		}
		return
	}

	for i, r := range res.Registers {
		fmt.Fprintf(w, "[%d]: %d (0x%04X)\n", int(res.Address)+i, r, r)
	}
}
