// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/primes/pipe"
	"github.com/ezrec/primes/sieve"
	"github.com/ezrec/primes/translate"
)

func main() {
	var bound string
	var capacity int
	var maxPipes int
	var output string
	var verbose bool

	flag.StringVar(&bound, "n", "280", "Upper bound (inclusive), as an expression")
	flag.IntVar(&capacity, "c", pipe.PIPE_SIZE, "Pipe capacity in bytes")
	flag.IntVar(&maxPipes, "p", 0, "Maximum live pipes, 0 for no limit")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	config := sieve.DefaultConfig()
	config.Capacity = capacity
	config.MaxPipes = maxPipes
	config.Verbose = verbose

	var err error
	config.Bound, err = sieve.ParseBound(bound)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if output == "-" {
		config.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		config.Output = ouf
	}

	result, err := sieve.NewSieve(config).Run()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if verbose {
		translate.Fprintf(os.Stderr, "%d primes up to %d, %d units\n", len(result.Primes), config.Bound, result.Units)
	}
}
