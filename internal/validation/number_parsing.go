// Package validation enforces source conventions the compiler cannot check.
// Its single concern is numeric text: reference-table cells and column labels
// are parsed in the table codec and nowhere else, so every strconv parse call
// outside the codec needs an allowlist entry.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Error locates one convention violation in the module source.
type Error struct {
	File    string
	Line    int
	Message string
	Code    string
}

// ParseAllowlist captures approved numeric-parsing locations for lint
// enforcement.
type ParseAllowlist struct {
	Version      int                   `json:"version"`
	ExcludeGlobs []string              `json:"exclude_globs"`
	Entries      []ParseAllowlistEntry `json:"entries"`
}

// ParseAllowlistEntry describes a scoped parsing exception.
type ParseAllowlistEntry struct {
	Path      string   `json:"path"`
	Symbols   []string `json:"symbols,omitempty"`
	Category  string   `json:"category"`
	Rationale string   `json:"rationale"`
	Owner     string   `json:"owner"`
	Refs      []string `json:"refs,omitempty"`
}

var parseAllowlistCategories = map[string]struct{}{
	"cell-codec":       {},
	"schema-labels":    {},
	"tooling":          {},
	"test-only":        {},
	"legacy-exception": {},
}

// strconv functions that turn text into numbers or booleans. Formatting
// functions are deliberately absent; renders build strings, they never
// read them back.
var strconvParseFuncs = map[string]struct{}{
	"ParseFloat": {},
	"ParseInt":   {},
	"ParseUint":  {},
	"Atoi":       {},
	"ParseBool":  {},
}

// LoadParseAllowlist loads and validates the parsing allowlist from disk.
func LoadParseAllowlist(listPath string) (ParseAllowlist, error) {
	// #nosec G304 -- allowlist path is provided by repo tooling during linting
	data, err := os.ReadFile(listPath)
	if err != nil {
		return ParseAllowlist{}, fmt.Errorf("read parse allowlist: %w", err)
	}
	var allowlist ParseAllowlist
	if err := json.Unmarshal(data, &allowlist); err != nil {
		return ParseAllowlist{}, fmt.Errorf("parse allowlist json: %w", err)
	}
	if err := validateAllowlist(&allowlist); err != nil {
		return ParseAllowlist{}, err
	}
	return allowlist, nil
}

// ValidateNumberParsingFromFile loads the allowlist and validates strconv
// usage under the roots.
func ValidateNumberParsingFromFile(listPath, baseDir string, roots []string) ([]Error, error) {
	allowlist, err := LoadParseAllowlist(listPath)
	if err != nil {
		return nil, err
	}
	return ValidateNumberParsing(allowlist, baseDir, roots)
}

// ValidateNumberParsing reports strconv parse calls that are not allowlisted.
func ValidateNumberParsing(allowlist ParseAllowlist, baseDir string, roots []string) ([]Error, error) {
	if len(roots) == 0 {
		return nil, errors.New("no roots provided for parse validation")
	}
	if err := validateAllowlist(&allowlist); err != nil {
		return nil, err
	}
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}
	index := buildAllowlistIndex(allowlist)
	var violations []Error

	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		rootPath := root
		if !filepath.IsAbs(rootPath) {
			rootPath = filepath.Join(baseAbs, rootPath)
		}
		info, err := os.Stat(rootPath)
		if err != nil {
			return nil, fmt.Errorf("stat root %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %s is not a directory", root)
		}
		if err := filepath.WalkDir(rootPath, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}
			rel, err := filepath.Rel(baseAbs, path)
			if err != nil {
				return err
			}
			rel = normalizePath(rel)
			if shouldExclude(rel, allowlist.ExcludeGlobs) {
				return nil
			}
			if index.allowAll[rel] {
				return nil
			}
			fileViolations, err := validateParseFile(path, rel, index)
			if err != nil {
				return err
			}
			violations = append(violations, fileViolations...)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	return violations, nil
}

func validateAllowlist(allowlist *ParseAllowlist) error {
	if allowlist.Version <= 0 {
		return errors.New("parse allowlist version must be >= 1")
	}
	for i, entry := range allowlist.Entries {
		entry.Path = strings.TrimSpace(entry.Path)
		if entry.Path == "" {
			return fmt.Errorf("parse allowlist entry %d missing path", i)
		}
		entry.Path = normalizePath(entry.Path)
		entry.Category = strings.TrimSpace(entry.Category)
		if entry.Category == "" {
			return fmt.Errorf("parse allowlist entry %d missing category", i)
		}
		if _, ok := parseAllowlistCategories[entry.Category]; !ok {
			return fmt.Errorf("parse allowlist entry %d has unknown category %q", i, entry.Category)
		}
		entry.Owner = strings.TrimSpace(entry.Owner)
		if entry.Owner == "" {
			return fmt.Errorf("parse allowlist entry %d missing owner", i)
		}
		entry.Rationale = strings.TrimSpace(entry.Rationale)
		if entry.Rationale == "" {
			return fmt.Errorf("parse allowlist entry %d missing rationale", i)
		}
		if strings.HasPrefix(entry.Path, "pkg/") && entry.Category != "schema-labels" && entry.Category != "legacy-exception" {
			return fmt.Errorf("parse allowlist entry %d: exported packages accept only schema-labels or legacy-exception", i)
		}
		entry.Symbols = normalizeSymbols(entry.Symbols)
		allowlist.Entries[i] = entry
	}
	for i, glob := range allowlist.ExcludeGlobs {
		allowlist.ExcludeGlobs[i] = strings.TrimSpace(glob)
	}
	return nil
}

func normalizePath(p string) string {
	cleaned := filepath.Clean(strings.TrimSpace(p))
	cleaned = filepath.ToSlash(cleaned)
	return strings.TrimPrefix(cleaned, "./")
}

func normalizeSymbols(symbols []string) []string {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.TrimSpace(symbol)
		if symbol != "" {
			out = append(out, symbol)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type parseAllowlistIndex struct {
	allowAll map[string]bool
	symbols  map[string]map[string]struct{}
}

func buildAllowlistIndex(allowlist ParseAllowlist) parseAllowlistIndex {
	index := parseAllowlistIndex{
		allowAll: make(map[string]bool),
		symbols:  make(map[string]map[string]struct{}),
	}
	for _, entry := range allowlist.Entries {
		if len(entry.Symbols) == 0 {
			index.allowAll[entry.Path] = true
			continue
		}
		symbolSet, ok := index.symbols[entry.Path]
		if !ok {
			symbolSet = make(map[string]struct{})
			index.symbols[entry.Path] = symbolSet
		}
		for _, symbol := range entry.Symbols {
			symbolSet[symbol] = struct{}{}
		}
	}
	return index
}

func (index parseAllowlistIndex) isAllowed(relPath, symbol string) bool {
	if index.allowAll[relPath] {
		return true
	}
	if symbol == "" {
		return false
	}
	symbols, ok := index.symbols[relPath]
	if !ok {
		return false
	}
	_, ok = symbols[symbol]
	return ok
}

type parseCall struct {
	pos  token.Pos
	name string
}

func validateParseFile(path, relPath string, index parseAllowlistIndex) ([]Error, error) {
	// #nosec G304 -- path is derived from repo walk and validated roots
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	local, dotImport := strconvImport(file)
	lines := strings.Split(string(content), "\n")
	snippet := func(line int) string {
		if line > 0 && line <= len(lines) {
			return strings.TrimSpace(lines[line-1])
		}
		return ""
	}
	if dotImport.IsValid() {
		pos := fset.Position(dotImport)
		return []Error{{
			File:    relPath,
			Line:    pos.Line,
			Message: "dot import of strconv hides parse calls from this guard; import it by name",
			Code:    snippet(pos.Line),
		}}, nil
	}
	if local == "" {
		return nil, nil
	}
	calls := collectParseCalls(file, local)
	if len(calls) == 0 {
		return nil, nil
	}
	symbols := buildSymbolRanges(file)
	var violations []Error
	for _, call := range calls {
		pos := fset.Position(call.pos)
		symbol := symbolForPos(symbols, call.pos)
		if index.isAllowed(relPath, symbol) {
			continue
		}
		violations = append(violations, Error{
			File:    relPath,
			Line:    pos.Line,
			Message: fmt.Sprintf("disallowed strconv.%s; numeric text is parsed by the table codec or an allowlisted symbol", call.name),
			Code:    snippet(pos.Line),
		})
	}
	return violations, nil
}

// strconvImport resolves the local name the file binds strconv to. A dot
// import is reported through the second return so callers can flag it.
func strconvImport(file *ast.File) (string, token.Pos) {
	for _, imp := range file.Imports {
		if strings.Trim(imp.Path.Value, `"`) != "strconv" {
			continue
		}
		if imp.Name == nil {
			return "strconv", token.NoPos
		}
		switch imp.Name.Name {
		case ".":
			return "", imp.Pos()
		case "_":
			return "", token.NoPos
		default:
			return imp.Name.Name, token.NoPos
		}
	}
	return "", token.NoPos
}

func collectParseCalls(file *ast.File, local string) []parseCall {
	var calls []parseCall
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok || ident.Name != local {
			return true
		}
		if _, ok := strconvParseFuncs[sel.Sel.Name]; ok {
			calls = append(calls, parseCall{pos: call.Pos(), name: sel.Sel.Name})
		}
		return true
	})
	return calls
}

type symbolRange struct {
	name  string
	start token.Pos
	end   token.Pos
}

func buildSymbolRanges(file *ast.File) []symbolRange {
	var ranges []symbolRange
	for _, decl := range file.Decls {
		switch node := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range node.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					ranges = append(ranges, symbolRange{name: spec.Name.Name, start: spec.Pos(), end: spec.End()})
				case *ast.ValueSpec:
					for _, name := range spec.Names {
						ranges = append(ranges, symbolRange{name: name.Name, start: spec.Pos(), end: spec.End()})
					}
				}
			}
		case *ast.FuncDecl:
			name := node.Name.Name
			if node.Recv != nil && len(node.Recv.List) > 0 {
				if recvName := receiverTypeName(node.Recv.List[0].Type); recvName != "" {
					name = recvName
				}
			}
			ranges = append(ranges, symbolRange{name: name, start: node.Pos(), end: node.End()})
		}
	}
	return ranges
}

func receiverTypeName(expr ast.Expr) string {
	switch node := expr.(type) {
	case *ast.Ident:
		return node.Name
	case *ast.StarExpr:
		return receiverTypeName(node.X)
	case *ast.IndexExpr:
		return receiverTypeName(node.X)
	case *ast.IndexListExpr:
		return receiverTypeName(node.X)
	}
	return ""
}

func symbolForPos(ranges []symbolRange, pos token.Pos) string {
	for _, r := range ranges {
		if pos >= r.start && pos <= r.end {
			return r.name
		}
	}
	return ""
}

func shouldExclude(relPath string, globs []string) bool {
	for _, glob := range globs {
		if glob == "" {
			continue
		}
		matched, err := matchGlob(glob, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func matchGlob(pattern, value string) (bool, error) {
	pattern = normalizePath(pattern)
	value = normalizePath(value)
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*\*`, "<<ANY>>")
	escaped = strings.ReplaceAll(escaped, `\*`, `[^/]*`)
	escaped = strings.ReplaceAll(escaped, `\?`, `[^/]`)
	escaped = strings.ReplaceAll(escaped, "<<ANY>>", ".*")
	expr := "^" + escaped + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}
