// Command nurbs evaluates a shape script and writes the exact rational
// B-spline curves and surfaces it describes as JSON.
//
//	nurbs [-tol t] [-timeout d] [-o out.json] [-indent] [-v] script.nurbs
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/nurbs/pkg/engine"
)

const logFlags = log.Ltime | log.Lshortfile

func init() {
	log.SetFlags(logFlags)
}

func main() {
	tol := flag.Float64("tol", 0, "geometric tolerance; overrides the script's (tolerance ...)")
	timeout := flag.Duration("timeout", engine.EvalTimeout, "abandon script evaluation after `duration`")
	out := flag.String("o", "", "write JSON to `file` instead of stdout")
	indent := flag.Bool("indent", false, "indent JSON output")
	verbose := flag.Bool("v", false, "log each resolved shape to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.nurbs\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	app := NewApp()
	app.Tolerance = *tol
	app.Timeout = *timeout
	if *verbose {
		app.Log = log.New(os.Stderr, "[resolve] ", log.Ltime|log.Lmsgprefix)
	}

	result := app.Evaluate(string(source))
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w.Message)
	}
	for _, e := range result.Errors {
		if e.Line > 0 {
			log.Printf("error: line %d: %s", e.Line, e.Message)
		} else {
			log.Printf("error: %s", e.Message)
		}
	}

	if err := output(*out, result, *indent); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// output writes result to path, or to stdout when path is empty.
func output(path string, result Result, indent bool) error {
	if path == "" {
		return writeJSON(os.Stdout, result, indent)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, result, indent); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, result Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
