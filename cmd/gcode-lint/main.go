// Command gcode-lint parses a whole G-code file through the modal-group
// parser, canonicalizes every valid line, and reports a status-code
// summary. It exercises the parser/modal/printer stack independently of
// the laser/drag rewriting pipeline, useful while authoring new
// post-processors.
package main

import (
	"fmt"
	"os"

	"github.com/256dpi/gcode"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/modal"
	"github.com/chrisns/gfilter-cnc/internal/parser"
	"github.com/chrisns/gfilter-cnc/internal/printer"
	"github.com/chrisns/gfilter-cnc/internal/status"
)

var reportedKinds = []status.Kind{
	status.ExpectedCommandLetter,
	status.BadNumberFormat,
	status.GcodeUnsupportedCommand,
	status.GcodeCommandValueNotInteger,
	status.GcodeModalGroupViolation,
	status.GcodeWordRepeated,
	status.GcodeAxisCommandConflict,
	status.GcodeMaxValueExceeded,
	status.NegativeValue,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: gcode-lint <file.nc>")
		return 1
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open input file: %v\n", err)
		return 2
	}
	defer f.Close()

	file, err := gcode.ParseFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not parse file: %v\n", err)
		return 2
	}

	shadow := &block.Shadow{}
	counts := make(map[status.Kind]int)

	for i, line := range file.Lines {
		text := line.String()

		blk, perr := parser.ParseLine(text)
		if perr != nil {
			counts[perr.Kind]++
			fmt.Fprintf(os.Stderr, "line %d: %s: %s\n", i+1, perr.Kind, text)
			continue
		}

		modal.UpdateState(shadow, blk)
		fmt.Println(printer.Render(blk))
	}

	fmt.Fprintf(os.Stderr, "\n%d line(s) processed", len(file.Lines))
	for _, kind := range reportedKinds {
		if n := counts[kind]; n > 0 {
			fmt.Fprintf(os.Stderr, ", %d %s", n, kind)
		}
	}
	fmt.Fprintln(os.Stderr)

	return 0
}
