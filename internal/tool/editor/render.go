package editor

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool/directory"
	"github.com/pmezard/go-difflib/difflib"
)

const reviewNote = "Review the changes and make sure they are as expected. Edit the file again if necessary."

// Result is the outcome of one command. Every command produces exactly one.
type Result struct {
	Success    bool   `json:"success"`
	Command    string `json:"command"`
	Path       string `json:"path"`
	Kind       Kind   `json:"kind,omitempty"`
	Message    string `json:"message"`
	Snippet    string `json:"snippet,omitempty"`
	Note       string `json:"note,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Diff       string `json:"diff,omitempty"`
	LintOutput string `json:"lint_output,omitempty"`
}

// Output renders the full human-readable report.
func (r *Result) Output() string {
	var b strings.Builder
	if !r.Success {
		b.WriteString("ERROR:\n")
	}
	b.WriteString(r.Message)
	if r.Snippet != "" {
		b.WriteString("\n")
		b.WriteString(r.Snippet)
	}
	if r.Note != "" {
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(r.Note)
	}
	if r.LintOutput != "" {
		b.WriteString("\n\nLinter output:\n")
		b.WriteString(r.LintOutput)
	}
	return b.String()
}

func failure(command, path string, err error) *Result {
	kind := KindOf(err)
	return &Result{
		Command: command,
		Path:    path,
		Kind:    kind,
		Message: err.Error(),
	}
}

// numberLines formats lines in `cat -n` layout starting at firstLine.
func numberLines(lines []string, firstLine int) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%6d\t%s\n", firstLine+i, line)
	}
	return b.String()
}

// window returns the lines in [from, to] clamped to the file, with the
// first line number actually shown.
func window(lines []string, from, to int) ([]string, int) {
	from = max(from, 1)
	to = min(to, len(lines))
	if from > to {
		return nil, from
	}
	return lines[from-1 : to], from
}

func viewHeader(path string) string {
	return fmt.Sprintf("Here's the result of running `cat -n` on %s:", path)
}

func editHeader(path string) string {
	return fmt.Sprintf("The file %s has been edited. Here's the result of running `cat -n` on a snippet of %s:", path, path)
}

func createHeader(path string) string {
	return fmt.Sprintf("File created successfully at: %s", path)
}

func undoHeader(path string) string {
	return fmt.Sprintf("Last edit to %s undone successfully. %s", path, viewHeader(path))
}

func renderListing(l *directory.Listing) (header, body, note string) {
	header = fmt.Sprintf("Here's the files and directories in %s, excluding hidden items:", l.Path)

	var b strings.Builder
	for _, e := range l.Entries {
		b.WriteString(e.Name)
		if e.IsDir {
			b.WriteString("/")
		}
		b.WriteString("\n")
	}

	if l.Truncated {
		note = fmt.Sprintf("Showing %d of %d entries.", len(l.Entries), l.TotalCount)
	}
	return header, b.String(), note
}

// unifiedDiff renders a unified diff between two versions of a file.
func unifiedDiff(path, before, after string) string {
	ud := difflib.UnifiedDiff{
		A:        diffLines(before),
		B:        diffLines(after),
		FromFile: "a" + path,
		ToFile:   "b" + path,
		Context:  3,
	}
	diff, _ := difflib.GetUnifiedDiffString(ud)
	return diff
}

func diffLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(s)
}
