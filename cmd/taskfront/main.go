package main

import (
	"fmt"
	"io"
	"os"

	"taskfront/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	if cfg.TrustedProjectConfigPath != "" {
		fmt.Fprintf(stderr, "warning: using trusted project config from %s\n", cfg.TrustedProjectConfigPath)
	}

	cmd := newRootCmd(cfg)
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		printCLIError(stderr, err)
		return 1
	}
	return 0
}

func printCLIError(w io.Writer, err error) {
	for _, line := range formatCLIError(err) {
		fmt.Fprintln(w, line)
	}
}
