package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TestCase is one parsed test function together with its doc comment,
// split along the Scenario/Expected convention used in the test suite.
type TestCase struct {
	Name     string // function name (e.g. "TestBranches_Search")
	Package  string // package path relative to the scan root
	File     string // file name
	Summary  string // first doc line with the function name stripped
	Scenario string // "Scenario:" doc line, if present
	Expected string // "Expected:" doc line, if present
}

// CollectTestCases walks the tree and parses every *_test.go file.
// With integrationOnly set, only *_integration_test.go files are read.
func CollectTestCases(root string, integrationOnly bool) ([]TestCase, error) {
	var cases []TestCase

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), "_test.go") {
			return nil
		}
		if integrationOnly && !strings.HasSuffix(info.Name(), "_integration_test.go") {
			return nil
		}

		pkgPath, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || pkgPath == "." {
			pkgPath = filepath.Base(root)
		}

		fileCases, err := parseTestFile(path, pkgPath)
		if err != nil {
			return err
		}
		cases = append(cases, fileCases...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(cases, func(i, j int) bool {
		if cases[i].Package != cases[j].Package {
			return cases[i].Package < cases[j].Package
		}
		return cases[i].Name < cases[j].Name
	})
	return cases, nil
}

func parseTestFile(path, pkgPath string) ([]TestCase, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var cases []TestCase
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunction(fn) {
			continue
		}

		tc := TestCase{
			Name:    fn.Name.Name,
			Package: pkgPath,
			File:    filepath.Base(path),
		}
		if fn.Doc != nil {
			tc.Summary, tc.Scenario, tc.Expected = splitDoc(fn.Doc.Text(), fn.Name.Name)
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// splitDoc pulls the summary, Scenario and Expected lines out of a doc
// comment.
func splitDoc(doc, testName string) (summary, scenario, expected string) {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "Scenario:"):
			scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
		case strings.HasPrefix(line, "Expected:"):
			expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
		case summary == "":
			summary = strings.TrimSpace(strings.TrimPrefix(line, testName+" "))
		}
	}
	return summary, scenario, expected
}

// isTestFunction checks for the func(t *testing.T) / func(b *testing.B)
// signature so helpers sharing the Test prefix are skipped.
func isTestFunction(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}
	starExpr, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	selExpr, ok := starExpr.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := selExpr.X.(*ast.Ident)
	if !ok {
		return false
	}
	return ident.Name == "testing" && (selExpr.Sel.Name == "T" || selExpr.Sel.Name == "B")
}
