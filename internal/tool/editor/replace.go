package editor

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/editkit/internal/tool/charset"
	"github.com/Cyclone1070/editkit/internal/tool/helper/content"
)

// replace substitutes the single exact occurrence of cmd.Old.
func (e *Editor) replace(cmd ReplaceCommand, abs string, enc charset.Resolution) (*Result, error) {
	doc, info, err := e.readText(abs, enc.Encoding)
	if err != nil {
		return nil, err
	}

	old := doc.Normalize(cmd.Old)
	replacement := doc.Normalize(cmd.New)

	offsets := content.Occurrences(doc.Text, old)
	switch len(offsets) {
	case 0:
		return nil, newError(NoMatch, abs, "No replacement was performed, old_str `%s` did not appear verbatim in %s.", cmd.Old, abs)
	case 1:
	default:
		lines := make([]string, len(offsets))
		for i, off := range offsets {
			lines[i] = fmt.Sprint(content.LineAt(doc.Text, off))
		}
		return nil, newError(AmbiguousMatch, abs,
			"No replacement was performed. Multiple occurrences of old_str `%s` in lines [%s]. Please ensure it is unique.",
			cmd.Old, strings.Join(lines, ", "))
	}

	off := offsets[0]
	updated := content.Document{
		Text: doc.Text[:off] + replacement + doc.Text[off+len(old):],
		CRLF: doc.CRLF,
	}

	if err := e.commit(abs, doc, updated, enc, permOf(info)); err != nil {
		return nil, err
	}

	// Snippet spans the replacement plus context on either side.
	first := content.LineAt(updated.Text, off)
	last := first + strings.Count(replacement, "\n")
	lines, from := window(content.Lines(updated.Text), first-e.contextLines, last+e.contextLines)

	return &Result{
		Message: editHeader(abs),
		Snippet: numberLines(lines, from),
		Note:    reviewNote,
		Diff:    unifiedDiff(abs, doc.Text, updated.Text),
	}, nil
}

// commit writes the new content, then checkpoints the previous content and
// remembers its encoding. Nothing is recorded unless the write succeeded, so
// a capped history never loses an older checkpoint to a failed edit.
func (e *Editor) commit(abs string, before, after content.Document, enc charset.Resolution, perm os.FileMode) error {
	data, err := e.encodeText(abs, after.Raw(), enc.Encoding)
	if err != nil {
		return err
	}
	if err := e.writeBytes(abs, data, perm); err != nil {
		return err
	}

	e.history.Push(abs, before.Raw(), enc.Encoding)
	e.encodings.Remember(abs, enc)
	return nil
}
