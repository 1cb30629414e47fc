package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintResults writes the final report: every failed test with the assertions that failed, every
// test that recorded cleanup warnings, and a one-line summary.
func PrintResults(out io.Writer, results Results) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	if len(results.Failures) > 0 {
		fmt.Fprintln(out, red("FAILED TESTS:"))
		for _, f := range results.Failures {
			fmt.Fprintf(out, "* %s\n", f.TestID)
			for _, e := range f.Errors {
				printIndented(out, e.Error(), "    ")
			}
		}
		fmt.Fprintln(out)
	}

	if warned := results.WithWarnings(); len(warned) > 0 {
		fmt.Fprintln(out, yellow("CLEANUP WARNINGS:"))
		for _, t := range warned {
			fmt.Fprintf(out, "* %s\n", t.TestID)
			for _, w := range t.Warnings {
				printIndented(out, w, "    ")
			}
		}
		fmt.Fprintln(out)
	}

	passed, failed, skipped := results.Count()
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if results.OK() {
		fmt.Fprintf(out, "%s (%s)\n", green("All tests passed"), summary)
	} else {
		fmt.Fprintf(out, "%s (%s)\n", red("Some tests failed"), summary)
	}
}

func printIndented(out io.Writer, text, indent string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(out, "%s%s\n", indent, line)
	}
}
