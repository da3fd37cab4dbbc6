package bench

import (
	"fmt"
	"os"
)

// StdoutSink writes each summary line to standard output. It is the sink
// every new Engine starts with.
func StdoutSink(line string) {
	fmt.Fprintln(os.Stdout, line)
}
