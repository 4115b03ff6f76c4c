// internal/cli/usage.go
package cli

import (
	"fmt"
	"io"
)

// Usage prints the help screen.
func Usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "usage: %s [options]... <serialport|host> [write-data]...\n", prog)
	fmt.Fprint(w, `  options:
    --debug                 debug logging, includes frame trace
    -m{rtu|tcp}             connection type
    -a<slave-addr=1>
    -c<read-no=1>
    -r<start-addr=100>
    -t<f-type>              f-type:
      (0x01) Read Coils
      (0x02) Read Discrete Inputs
      (0x03) Read Holding Registers
      (0x04) Read Input Registers
      (0x05) Write Single Coil
      (0x06) Write Single Register
      (0x0F) Write Multiple Coils
      (0x10) Write Multiple Registers
    -o<timeout-ms=1000>
    -0                      start reference is 1-based
    rtu-params
      -b<baud-rate=9600>
      -d{7|8}<data-bits=8>
      -s{1|2}<stop-bits=1>
      -p{none|even|odd}=even
    tcp-params
      -p<port=502>
    --listen                wait for one client to connect, then poll it
    --interval <ms>         delay between polls when repeating (1000)
    --repeat <n>            number of polls, 0 = until interrupted (1)
    --config <file>         YAML connection profile
    --list-ports            list serial ports and exit
    -h --help               display the help screen and exit.
    -v --version            display the version number and exit.

`)
	fmt.Fprintln(w, "Examples (run with default modbus server on port 1502):")
	fmt.Fprintf(w, "  Write data: %s --debug -mtcp -t0x10 -r0 -p1502 127.0.0.1 0x01 0x02\n", prog)
	fmt.Fprintf(w, "   Read data: %s --debug -mtcp -t0x03 -r0 -p1502 127.0.0.1 -c3\n", prog)
}
