package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"

	"jist/interpreter-go/pkg/driver"
)

const cliToolVersion = "jist 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath string
		verbose    bool
		source     string
	)
	for idx := 0; idx < len(args); idx++ {
		switch arg := args[idx]; arg {
		case "--help", "-h":
			printUsage(stdout)
			return 0
		case "--version", "-V":
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		case "-v", "--verbose":
			verbose = true
		case "--config":
			if idx+1 >= len(args) {
				fmt.Fprintln(stderr, "--config requires a path")
				return 1
			}
			idx++
			configPath = args[idx]
		default:
			if source != "" {
				fmt.Fprintf(stderr, "unexpected argument %q\n", arg)
				printUsage(stderr)
				return 1
			}
			source = arg
		}
	}
	if source == "" {
		printUsage(stderr)
		return 1
	}

	cfg, err := loadConfig(configPath, source)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	level := cfg.Level()
	if verbose {
		level = log.Verbose
	}
	log.SetLogLevel(level)

	if _, err := driver.RunFile(source, cfg, stdout); err != nil {
		log.Errf("%v", err)
		if errors.Is(err, driver.ErrSourceExtension) {
			fmt.Fprintf(stderr, "source files must end in %s\n", cfg.SourceExtension)
		}
		return 1
	}
	return 0
}

func loadConfig(explicit, source string) (*driver.Config, error) {
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}
	return driver.ResolveConfig(filepath.Dir(source))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: jist [--config jist.yml] [-v] <file.jist>")
	fmt.Fprintln(w, "       jist --version")
}
