package debug

import (
	"fmt"
	"os"
)

// Logf writes a trace line to stderr. Callers check the matching flag
// first.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
