package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mkcms/pjlisp"
)

// args mirrors the teacher's own `args` struct in its CLI entry point:
// one field per flag, populated once by readArgs.
type args struct {
	repl  *bool
	input *string
}

func readArgs() *args {
	a := &args{
		repl:  flag.Bool("repl", false, "Run interactively: prompt before each read, print each result, continue past errors"),
		input: flag.String("input", "", "Path to a file to read the program from (default: stdin)"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	var input io.Reader = os.Stdin
	if *a.input != "" {
		data, err := os.ReadFile(*a.input)
		if err != nil {
			log.Fatalf("Can't open input file: %s", err.Error())
		}
		input = strings.NewReader(string(data))
	}

	code := lisp.RunDriver(input, os.Stdout, *a.repl)
	os.Exit(code)
}
