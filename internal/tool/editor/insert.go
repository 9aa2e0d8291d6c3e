package editor

import (
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
)

// insert splices cmd.Text as new lines after line cmd.AfterLine (0 = top of file).
func (e *Editor) insert(cmd InsertCommand, abs string, enc charset.Resolution) (*Result, error) {
	doc, info, err := e.readText(abs, enc.Encoding)
	if err != nil {
		return nil, err
	}

	lines := content.Lines(doc.Text)
	total := len(lines)
	if cmd.AfterLine < 0 || cmd.AfterLine > total {
		return nil, newError(InvalidLine, abs,
			"Invalid `insert_line` parameter: %d. It should be within the range of allowed values: [0, %d]",
			cmd.AfterLine, total)
	}

	inserted := strings.Split(strings.TrimSuffix(doc.Normalize(cmd.Text), "\n"), "\n")

	merged := make([]string, 0, total+len(inserted))
	merged = append(merged, lines[:cmd.AfterLine]...)
	merged = append(merged, inserted...)
	merged = append(merged, lines[cmd.AfterLine:]...)

	trailing := strings.HasSuffix(doc.Text, "\n") || (total == 0 && strings.HasSuffix(cmd.Text, "\n"))
	updated := content.Document{Text: content.JoinLines(merged, trailing), CRLF: doc.CRLF}

	if err := e.commit(abs, doc, updated, enc, permOf(info)); err != nil {
		return nil, err
	}

	first := cmd.AfterLine + 1
	last := cmd.AfterLine + len(inserted)
	snippet, from := window(merged, first-e.contextLines, last+e.contextLines)

	return &Result{
		Message: editHeader(abs),
		Snippet: numberLines(snippet, from),
		Note:    reviewNote,
		Diff:    unifiedDiff(abs, doc.Text, updated.Text),
	}, nil
}
