package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"kafkatype/internal/config"
	"kafkatype/internal/diagnostic"
	"kafkatype/internal/mapping"
	"kafkatype/label"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Scanner loads Go packages and collects types marked with the kafka:type directive.
type Scanner struct {
	dir       string
	buildTags []string

	diags    *diagnostic.Diagnostics
	packages map[string]*PackageInfo
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDir sets the directory the go command runs in. Defaults to the
// current directory, which must be inside the module being scanned.
func WithDir(dir string) Option {
	return func(s *Scanner) { s.dir = dir }
}

// WithBuildTags adds build tags used when loading packages.
func WithBuildTags(tags ...string) Option {
	return func(s *Scanner) { s.buildTags = append(s.buildTags, tags...) }
}

// NewScanner creates a new Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Patterns turns include prefixes into package patterns.
// "kafkatype/examples/model" becomes "kafkatype/examples/model/...", which
// matches the package itself and every package below it.
func Patterns(include []string) []string {
	prefixes := config.PackagePrefixes(include)

	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p+"/...")
	}

	return out
}

// Scan loads the packages under include and returns the marked types,
// sorted by name. Problems with individual packages or declarations are
// reported as diagnostics; the error is only set when loading fails as a
// whole.
func (s *Scanner) Scan(include ...string) ([]mapping.Candidate, *diagnostic.Diagnostics, error) {
	s.diags = &diagnostic.Diagnostics{}
	s.packages = make(map[string]*PackageInfo)

	patterns := Patterns(include)
	if len(patterns) == 0 {
		return nil, s.diags, nil
	}

	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  s.dir,
	}
	if len(s.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(s.buildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, s.diags, fmt.Errorf("failed to load packages: %w", err)
	}

	var out []mapping.Candidate

	seen := make(map[string]bool)

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			for _, e := range pkg.Errors {
				s.diags.AddError(diagnostic.CodePackageError, label.ErrUnresolvedType, e.Msg,
					diagnostic.Subject{TypeName: pkg.PkgPath, Pos: e.Pos})
			}

			continue
		}

		for _, c := range s.processPackage(pkg) {
			if seen[c.TypeName] {
				continue
			}

			seen[c.TypeName] = true
			out = append(out, c)
		}
	}

	slices.SortFunc(out, func(a, b mapping.Candidate) int {
		return strings.Compare(a.TypeName, b.TypeName)
	})

	return out, s.diags, nil
}

// Candidates implements mapping.Source. Diagnostics of the last call are
// available from Diagnostics.
func (s *Scanner) Candidates(include []string) ([]mapping.Candidate, error) {
	candidates, diags, err := s.Scan(include...)
	if err != nil {
		return nil, err
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// Diagnostics returns the diagnostics of the last scan.
func (s *Scanner) Diagnostics() *diagnostic.Diagnostics {
	if s.diags == nil {
		return &diagnostic.Diagnostics{}
	}

	return s.diags
}

// Packages returns the packages of the last scan that declared marked types.
func (s *Scanner) Packages() map[string]*PackageInfo {
	return s.packages
}

// processPackage extracts marked declarations from a loaded package.
func (s *Scanner) processPackage(pkg *packages.Package) []mapping.Candidate {
	var out []mapping.Candidate

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					s.warnMisplaced(pkg, d.Doc)
					continue
				}

				// A directive on a grouped declaration does not say which type it marks.
				if len(d.Specs) > 1 {
					s.warnMisplaced(pkg, d.Doc)
				}

				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}

					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					dir, ok := findDirective(doc)
					if !ok {
						continue
					}

					if c, ok := s.candidate(pkg, ts, dir); ok {
						out = append(out, c)
					}
				}

			case *ast.FuncDecl:
				s.warnMisplaced(pkg, d.Doc)
			}
		}
	}

	return out
}

// candidate resolves a marked type spec.
func (s *Scanner) candidate(pkg *packages.Package, ts *ast.TypeSpec, dir directive) (mapping.Candidate, bool) {
	id := TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}
	position := pkg.Fset.Position(dir.pos)
	subject := diagnostic.Subject{TypeName: id.String(), Label: dir.value, Pos: position.String()}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj.Parent() != pkg.Types.Scope() {
		s.diags.AddError(diagnostic.CodeUnresolvedType, label.ErrUnresolvedType,
			"marked declaration does not resolve to a package-level type", subject)

		return mapping.Candidate{}, false
	}

	if reason := unsupported(obj, ts); reason != "" {
		s.diags.AddWarning(diagnostic.CodeUnsupportedType, reason+"; directive ignored", subject)
		return mapping.Candidate{}, false
	}

	if len(dir.extra) > 0 {
		s.diags.AddWarning(diagnostic.CodeExtraDirectiveFields,
			fmt.Sprintf("ignoring extra directive fields %q", dir.extra), subject)
	}

	info := s.packageInfo(pkg, filepath.Dir(position.Filename))
	info.Types = append(info.Types, id)

	return mapping.Candidate{
		TypeName: id.String(),
		Label:    dir.value,
		Pos:      position.String(),
		Package:  pkg.Name,
		Dir:      info.Dir,
	}, true
}

// unsupported returns why a marked type cannot be instantiated from a
// label, or "" when it can.
func unsupported(obj *types.TypeName, ts *ast.TypeSpec) string {
	if ts.Assign.IsValid() {
		return "type aliases cannot be marked, mark the aliased type instead"
	}

	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return "generic types cannot be marked"
	}

	if types.IsInterface(obj.Type()) {
		return "interface types cannot be marked"
	}

	return ""
}

func (s *Scanner) packageInfo(pkg *packages.Package, dir string) *PackageInfo {
	info, ok := s.packages[pkg.PkgPath]
	if !ok {
		info = &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name, Dir: dir}
		s.packages[pkg.PkgPath] = info
	}

	return info
}

func (s *Scanner) warnMisplaced(pkg *packages.Package, doc *ast.CommentGroup) {
	dir, ok := findDirective(doc)
	if !ok {
		return
	}

	s.diags.AddWarning(diagnostic.CodeMisplacedDirective,
		"kafka:type directive must precede a single type declaration",
		diagnostic.Subject{Label: dir.value, Pos: pkg.Fset.Position(dir.pos).String()})
}
