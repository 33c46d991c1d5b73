// Command gfilter rewrites a stream of G-code for a two-axis cutting
// machine, inserting laser lead-in/lead-out moves or drag-knife pivot
// arcs depending on the selected mode.
package main

import (
	"fmt"
	"os"

	"github.com/chrisns/gfilter-cnc/internal/cli"
	"github.com/chrisns/gfilter-cnc/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if cli.ShouldShowHelp(args) {
		fmt.Print(cli.GetHelpText())
		return 0
	}

	parsedArgs, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprint(os.Stderr, cli.GetHelpText())
		return cli.PrintError(err)
	}

	infile := os.Stdin
	if parsedArgs.InputFile != "" {
		f, err := os.Open(parsedArgs.InputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open input file: %v\n", err)
			return 2
		}
		defer f.Close()
		infile = f
	}

	outfile := os.Stdout
	if parsedArgs.OutputFile != "" {
		f, err := os.Create(parsedArgs.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open output: %v\n", err)
			return 3
		}
		defer f.Close()
		outfile = f
	}

	p := pipeline.New(parsedArgs.Mode, parsedArgs.Param, parsedArgs.AngleDeg)
	reporter := cli.NewReporter(os.Stderr)

	if err := pipeline.Run(infile, outfile, p, reporter.Report); err != nil {
		return cli.PrintError(err)
	}

	fmt.Fprint(os.Stderr, reporter.Summary())
	return 0
}
