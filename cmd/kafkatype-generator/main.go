// kafkatype-generator scans Go packages for types marked with a
// //kafka:type directive and reports, validates or registers them.
//
// Commands:
//
//	scan   print the flattened type mapping (label:import/path.Type,...)
//	check  print every diagnostic, fail when any is an error
//	gen    write a kafkatype_gen.go registration file into each package
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"kafkatype/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	command    string
	configPath string
	include    []string
	exclude    []string
	dir        string
	tags       []string
	logLevel   string
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	pkgs := cfg.Kafka.TypeMapping.Packages
	if opts.include != nil {
		pkgs.Include = config.PackagePrefixes(opts.include)
	}

	if opts.exclude != nil {
		pkgs.Exclude = config.PackagePrefixes(opts.exclude)
	}

	if len(pkgs.Include) == 0 {
		return errors.New("no include packages: set --include or kafka.type-mapping.packages.include")
	}

	cmd := &command{
		logger:  logger,
		stdout:  stdout,
		include: pkgs.Include,
		exclude: pkgs.Exclude,
		dir:     opts.dir,
		tags:    opts.tags,
	}

	switch opts.command {
	case "scan":
		return cmd.scan()
	case "check":
		return cmd.check()
	case "gen":
		return cmd.gen()
	default:
		return fmt.Errorf("unknown command %q", opts.command)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	flagSet := pflag.NewFlagSet("kafkatype-generator", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to the YAML configuration file")
	flagSet.StringSliceVarP(&opts.include, "include", "i", nil, "package prefix to scan (repeatable, overrides the config file)")
	flagSet.StringSliceVarP(&opts.exclude, "exclude", "e", nil, "type name prefix to leave out (repeatable, overrides the config file)")
	flagSet.StringVar(&opts.dir, "dir", "", "directory to resolve packages from (default: current directory)")
	flagSet.StringSliceVar(&opts.tags, "tags", nil, "build tags used when loading packages")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return options{}, errors.New("missing command")
	}

	if len(rest) > 1 {
		return options{}, fmt.Errorf("unexpected argument: %s", rest[1])
	}

	opts.command = rest[0]

	return opts, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `kafkatype-generator finds types marked with //kafka:type and builds their
Kafka type mapping.

Usage:
  kafkatype-generator <scan|check|gen> [flags]

Commands:
  scan    print the flattened type mapping
  check   print diagnostics, exit non-zero on errors
  gen     write kafkatype_gen.go registration files

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
