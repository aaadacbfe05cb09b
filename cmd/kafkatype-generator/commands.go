package main

import (
	"fmt"
	"io"
	"log/slog"

	"kafkatype/internal/analyze"
	"kafkatype/internal/diagnostic"
	"kafkatype/internal/gen"
	"kafkatype/internal/mapping"
)

// command holds what every subcommand needs.
type command struct {
	logger  *slog.Logger
	stdout  io.Writer
	include []string
	exclude []string
	dir     string
	tags    []string
}

func (c *command) filter() mapping.Filter {
	if len(c.exclude) == 0 {
		return nil
	}

	return mapping.NewPrefixFilter(c.exclude)
}

// build scans the include packages and builds the table. The returned
// diagnostics hold both scanner and builder findings.
func (c *command) build() ([]mapping.Candidate, *mapping.Table, *diagnostic.Diagnostics, error) {
	scanner := analyze.NewScanner(analyze.WithDir(c.dir), analyze.WithBuildTags(c.tags...))

	c.logger.Debug("scanning packages", "patterns", analyze.Patterns(c.include))

	candidates, diags, err := scanner.Scan(c.include...)
	if err != nil {
		return nil, nil, diags, err
	}

	table, buildDiags := mapping.BuildDiagnostics(candidates, c.filter())
	diags.Merge(buildDiags)

	c.logger.Debug("scan finished",
		"packages", len(scanner.Packages()),
		"candidates", len(candidates),
		"errors", len(diags.Errors),
		"warnings", len(diags.Warnings))

	return candidates, table, diags, nil
}

func (c *command) logWarnings(diags *diagnostic.Diagnostics) {
	for _, w := range diags.Warnings {
		c.logger.Warn(w.Message, "type", w.TypeName, "code", w.Code.String(), "pos", w.Pos)
	}
}

func (c *command) scan() error {
	_, table, diags, err := c.build()
	if err != nil {
		return err
	}

	c.logWarnings(diags)

	if err := diags.Err(); err != nil {
		return err
	}

	fmt.Fprintln(c.stdout, table.String())

	return nil
}

func (c *command) check() error {
	_, _, diags, err := c.build()
	if err != nil {
		return err
	}

	for _, d := range diags.All() {
		fmt.Fprintf(c.stdout, "%s: %s\n", d.Severity, d)
	}

	if diags.HasErrors() {
		return fmt.Errorf("check failed with %d error(s)", len(diags.Errors))
	}

	c.logger.Info("check passed", "warnings", len(diags.Warnings))

	return nil
}

func (c *command) gen() error {
	candidates, table, diags, err := c.build()
	if err != nil {
		return err
	}

	c.logWarnings(diags)

	if err := diags.Err(); err != nil {
		return err
	}

	files, err := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(candidates, c.filter())
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		c.logger.Info("wrote registrations", "package", f.PkgPath, "dir", f.Dir, "file", f.Filename)
	}

	c.logger.Info("generation finished", "files", len(files), "mappings", table.Len())

	return nil
}
