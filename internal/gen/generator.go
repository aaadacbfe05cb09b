package gen

import (
	"bytes"
	"cmp"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"text/template"

	"kafkatype/internal/common"
	"kafkatype/internal/mapping"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file written into each package.
	Filename string
	// LabelImportPath is the import path of the label registry package.
	LabelImportPath string
	// LabelImportName is the name the registry package is imported as.
	LabelImportName string
	// Tool is named in the "Code generated" header.
	Tool string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:        "kafkatype_gen.go",
		LabelImportPath: "kafkatype/label",
		LabelImportName: "kafkatype",
		Tool:            "kafkatype-generator",
	}
}

// Generator generates registration files from scanned candidates.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
// Empty fields fall back to the defaults.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	config.Filename = cmp.Or(config.Filename, def.Filename)
	config.LabelImportPath = cmp.Or(config.LabelImportPath, def.LabelImportPath)
	config.LabelImportName = cmp.Or(config.LabelImportName, def.LabelImportName)
	config.Tool = cmp.Or(config.Tool, def.Tool)

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "kafkatype_gen.go").
	Filename string
	// PkgPath is the import path of the package.
	PkgPath string
	// Content is the formatted Go source code.
	Content []byte
}

type registration struct {
	Label string
	Name  string
}

type templateData struct {
	Tool          string
	PackageName   string
	ImportName    string
	ImportPath    string
	Registrations []registration
}

type packageGroup struct {
	name          string
	dir           string
	registrations []registration
}

// Generate returns one file per package, ordered by package path.
// Candidates matched by filter (which may be nil) are skipped. The rest
// must form a valid table, so a collision or a missing label fails
// generation instead of producing code that fails at startup.
func (g *Generator) Generate(candidates []mapping.Candidate, filter mapping.Filter) ([]GeneratedFile, error) {
	kept := make([]mapping.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if filter != nil && filter.Match(c.TypeName) {
			continue
		}

		kept = append(kept, c)
	}

	if _, err := mapping.Build(kept, nil); err != nil {
		return nil, err
	}

	groups := make(map[string]*packageGroup)

	for _, c := range kept {
		pkgPath, name := common.SplitTypeName(c.TypeName)
		if pkgPath == "" || c.Package == "" || c.Dir == "" {
			return nil, fmt.Errorf("generating %s: package of the type is unknown", c.TypeName)
		}

		if pkgPath == g.config.LabelImportPath {
			return nil, fmt.Errorf("generating %s: cannot register types of the registry package", c.TypeName)
		}

		grp, ok := groups[pkgPath]
		if !ok {
			grp = &packageGroup{name: c.Package, dir: c.Dir}
			groups[pkgPath] = grp
		}

		grp.registrations = append(grp.registrations, registration{Label: c.Label, Name: name})
	}

	files := make([]GeneratedFile, 0, len(groups))

	for _, pkgPath := range slices.Sorted(maps.Keys(groups)) {
		grp := groups[pkgPath]

		file, err := g.generatePackage(pkgPath, grp)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkgPath, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generatePackage(pkgPath string, grp *packageGroup) (*GeneratedFile, error) {
	regs := slices.Clone(grp.registrations)
	slices.SortFunc(regs, func(a, b registration) int {
		return cmp.Or(cmp.Compare(a.Label, b.Label), cmp.Compare(a.Name, b.Name))
	})
	regs = slices.Compact(regs)

	data := templateData{
		Tool:          g.config.Tool,
		PackageName:   grp.name,
		ImportName:    g.config.LabelImportName,
		ImportPath:    g.config.LabelImportPath,
		Registrations: regs,
	}

	var buf bytes.Buffer
	if err := registrationTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.String())
	}

	return &GeneratedFile{
		Dir:      grp.dir,
		Filename: g.config.Filename,
		PkgPath:  pkgPath,
		Content:  formatted,
	}, nil
}

var registrationTemplate = template.Must(template.New("registration").Parse(
	`// Code generated by {{.Tool}}. DO NOT EDIT.

package {{.PackageName}}

import {{.ImportName}} "{{.ImportPath}}"

func init() {
{{- range .Registrations}}
	{{$.ImportName}}.MustRegister({{printf "%q" .Label}}, (*{{.Name}})(nil))
{{- end}}
}
`))
