// Package logging provides logger creation for the rowcaster CLI.
package logging

import (
	"fmt"

	"github.com/dekarrin/jellog"
)

// Component is the component name attached to every log line.
const Component = "rowcaster"

// New creates the CLI logger. Stderr receives Info and above, or Debug and
// above when verbose is set. If filename is not blank, every message down to
// Trace is also written to that file.
func New(verbose bool, filename string) (jellog.Logger[string], error) {
	j := jellog.New(jellog.Defaults[string]().WithComponent(Component))

	if filename != "" {
		logOut, err := jellog.OpenFile(filename, nil)
		if err != nil {
			return j, fmt.Errorf("open logfile: %q: %w", filename, err)
		}

		j.AddHandler(jellog.LvTrace, logOut)
	}

	if verbose {
		j.AddHandler(jellog.LvDebug, jellog.NewStderrHandler(nil))
	} else {
		j.AddHandler(jellog.LvInfo, jellog.NewStderrHandler(nil))
	}

	return j, nil
}
