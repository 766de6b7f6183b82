// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no clipboard utility is available (for example
// over SSH).
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/andareed/siftly-series/logging"
)

// Method names the path a copy took.
type Method string

const (
	System Method = "system"
	OSC52  Method = "osc52"
)

// ErrUnavailable is returned when neither path could be used.
var ErrUnavailable = errors.New("clipboard unavailable")

var (
	systemWrite           = clipboard.WriteAll
	stdout      io.Writer = os.Stdout
)

// Copy places text on the clipboard.
func Copy(text string) (Method, error) {
	err := systemWrite(text)
	if err == nil {
		logging.Debugf("clipboard: copied %d bytes via system clipboard", len(text))
		return System, nil
	}
	logging.Debugf("clipboard: system clipboard failed: %v", err)

	if err := copyOSC52(stdout, text); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return OSC52, nil
}
