package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// commandGroups maps test-name prefixes to refq command sections.
var commandGroups = map[string]string{
	"Branches":  "refq branches",
	"Worktrees": "refq worktrees",
	"Select":    "refq select",
	"Search":    "refq search",
}

// RenderMarkdown writes the collected test cases as a markdown document
// grouped by command.
func RenderMarkdown(w io.Writer, cases []TestCase) error {
	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	grouped := make(map[string][]TestCase)
	for _, tc := range cases {
		grouped[groupOf(tc)] = append(grouped[groupOf(tc)], tc)
	}

	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Group | Tests |\n")
	fmt.Fprintf(w, "|-------|-------|\n")
	for _, g := range groups {
		fmt.Fprintf(w, "| %s | %d |\n", g, len(grouped[g]))
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", len(cases))

	for _, g := range groups {
		fmt.Fprintf(w, "## %s\n\n", g)
		fmt.Fprintf(w, "| Test | Scenario | Expected |\n")
		fmt.Fprintf(w, "|------|----------|----------|\n")
		for _, tc := range grouped[g] {
			fmt.Fprintf(w, "| `%s` | %s | %s |\n",
				tc.Name, cell(tc.Scenario, tc.Summary), cell(tc.Expected, ""))
		}
		fmt.Fprintf(w, "\n")
	}
	return nil
}

// groupOf picks the section for a test: a refq command when the name
// prefix maps to one, otherwise the package path.
func groupOf(tc TestCase) string {
	prefix, _, _ := strings.Cut(strings.TrimPrefix(tc.Name, "Test"), "_")
	if cmd, ok := commandGroups[prefix]; ok && strings.HasSuffix(tc.File, "_integration_test.go") {
		return cmd
	}
	return tc.Package
}

// cell formats a table cell, falling back when the primary text is empty.
func cell(text, fallback string) string {
	if text == "" {
		text = fallback
	}
	if text == "" {
		return "_undocumented_"
	}
	return strings.ReplaceAll(text, "|", "\\|")
}
