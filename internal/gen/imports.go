package gen

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"rowcaster/internal/common"
)

// RuntimeImport is the import path of the runtime package used by
// generated code.
const RuntimeImport = "rowcaster/sqlrow"

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// String renders the spec as it appears in an import block.
func (s importSpec) String() string {
	if s.Alias == "" {
		return fmt.Sprintf("%q", s.Path)
	}

	return fmt.Sprintf("%s %q", s.Alias, s.Path)
}

// importSet collects the imports of one generated file and hands out
// collision-free package names.
type importSet struct {
	byPath map[string]string
	taken  map[string]bool
	std    []importSpec
	other  []importSpec
}

func newImportSet() *importSet {
	return &importSet{
		byPath: make(map[string]string),
		taken:  make(map[string]bool),
	}
}

// add imports pkgPath and returns the name to qualify its identifiers with.
// name is the package name if known, empty otherwise.
func (s *importSet) add(pkgPath, name string) string {
	if ref, ok := s.byPath[pkgPath]; ok {
		return ref
	}

	if name == "" {
		name = common.PkgAlias(pkgPath)
	}

	ref := name
	for i := 2; s.taken[ref]; i++ {
		ref = fmt.Sprintf("%s%d", name, i)
	}

	s.taken[ref] = true
	s.byPath[pkgPath] = ref

	// The last path element is only a guess at the package name.
	spec := importSpec{Path: pkgPath}
	if ref != path.Base(pkgPath) {
		spec.Alias = ref
	}

	if isStdlib(pkgPath) {
		s.std = append(s.std, spec)
	} else {
		s.other = append(s.other, spec)
	}

	return ref
}

// isStdlib reports whether pkgPath looks like a standard library path.
func isStdlib(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".") && first != "rowcaster"
}

// block renders the import declaration, standard library first.
func (s *importSet) block() string {
	if len(s.std)+len(s.other) == 0 {
		return ""
	}

	sortSpecs(s.std)
	sortSpecs(s.other)

	var sb strings.Builder

	sb.WriteString("import (\n")

	for _, spec := range s.std {
		sb.WriteString("\t" + spec.String() + "\n")
	}

	if len(s.std) > 0 && len(s.other) > 0 {
		sb.WriteString("\n")
	}

	for _, spec := range s.other {
		sb.WriteString("\t" + spec.String() + "\n")
	}

	sb.WriteString(")\n")

	return sb.String()
}

func sortSpecs(specs []importSpec) {
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})
}
