package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisns/gfilter-cnc/internal/laser"
	"github.com/chrisns/gfilter-cnc/internal/pipeline"
)

// Args contains parsed command-line arguments for gfilter.
type Args struct {
	Mode       pipeline.Mode
	Param      float64 // laser acceleration (mm/s^2) or drag blade offset (mm)
	AngleDeg   float64
	InputFile  string // empty means stdin
	OutputFile string // empty means stdout
}

// ParseArgs parses gfilter's command-line arguments: exactly one of -l or
// -d selects the mode, -a sets the continuous-curve angle, and up to two
// positional arguments give the input and output file paths (falling
// back to stdin/stdout), per original_source/gfilter.c's usage().
func ParseArgs(args []string) (*Args, error) {
	fs := flag.NewFlagSet("gfilter", flag.ContinueOnError)
	fs.Usage = func() {}

	result := &Args{AngleDeg: laser.DefaultMaxAngleDeg}
	var modeSet bool

	fs.Func("l", "Laser mode / acceleration (mm/s^2)", func(v string) error {
		accel, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid -l value %q: must be a number", v)
		}
		result.Mode = pipeline.ModeLaser
		result.Param = accel
		modeSet = true
		return nil
	})
	fs.Func("d", "Drag knife mode / offset (mm)", func(v string) error {
		offset, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid -d value %q: must be a number", v)
		}
		result.Mode = pipeline.ModeDrag
		result.Param = offset
		modeSet = true
		return nil
	})
	fs.Func("a", "Max deflection angle treated as a continuous curve (default 2)", func(v string) error {
		deg, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid -a value %q: must be a number", v)
		}
		result.AngleDeg = deg
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var sawL, sawD bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			sawL = true
		case "d":
			sawD = true
		}
	})
	if sawL && sawD {
		return nil, fmt.Errorf("-l and -d are mutually exclusive")
	}
	if !modeSet {
		return nil, fmt.Errorf("one of -l or -d is required")
	}

	positional := fs.Args()
	if len(positional) > 2 {
		return nil, fmt.Errorf("too many arguments: expected at most [infile [outfile]]")
	}
	if len(positional) >= 1 {
		result.InputFile = positional[0]
	}
	if len(positional) == 2 {
		result.OutputFile = positional[1]
	}

	return result, nil
}

// ShouldShowHelp checks if --help or -h flag is present.
func ShouldShowHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// GetHelpText returns the help message text, mirroring
// original_source/gfilter.c's usage().
func GetHelpText() string {
	var sb strings.Builder
	sb.WriteString("Usage: gfilter <-l acc | -d offs> [-a deg] [infile [outfile]]\n")
	sb.WriteString("options:\n")
	sb.WriteString("  -l <acc>  Laser mode / acceleration (mm/s2)\n")
	sb.WriteString("  -d <offs> Drag knife mode / offset (mm)\n")
	sb.WriteString("  -a <deg>  Max deflection angle which should be treated as continuous curve\n")
	sb.WriteString("            Default = 2\n")
	return sb.String()
}
