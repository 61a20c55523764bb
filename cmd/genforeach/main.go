// Command genforeach generates the fixed-arity row handler adapters
// (ForEachN and TryForEachN) for the sqlite package from a YAML description.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shaunharker/SQLambda/cmd/genforeach/internal/generator"
)

func main() {
	cfg := generator.Config{}

	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to foreach.yml configuration file (required)")
	flag.StringVar(&cfg.OutputFile, "output", "foreach_gen.go", "Output file, or - for stdout")
	flag.Parse()

	if cfg.ConfigFile == "" {
		fmt.Fprintln(os.Stderr, "error: -config flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := generator.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
