package content

import "strings"

// Document is decoded file text with line endings normalised to LF.
// CRLF records that every line ending in the original was CRLF, so the
// text can be written back unchanged.
type Document struct {
	Text string
	CRLF bool
}

// ParseDocument normalises raw text. Mixed line endings are left alone.
func ParseDocument(raw string) Document {
	lf := strings.Count(raw, "\n")
	if lf > 0 && strings.Count(raw, "\r\n") == lf {
		return Document{Text: strings.ReplaceAll(raw, "\r\n", "\n"), CRLF: true}
	}
	return Document{Text: raw}
}

// Raw returns the text with the original line endings restored.
func (d Document) Raw() string {
	if d.CRLF {
		return strings.ReplaceAll(d.Text, "\n", "\r\n")
	}
	return d.Text
}

// Normalize converts caller-supplied text to the document's LF form.
func (d Document) Normalize(s string) string {
	if d.CRLF {
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return s
}

// Lines splits LF text into lines. A trailing newline does not start a new line
// and empty text has no lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// JoinLines is the inverse of Lines.
func JoinLines(lines []string, trailingNewline bool) string {
	text := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		text += "\n"
	}
	return text
}

// LineAt returns the 1-based line number containing byte offset off.
func LineAt(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return strings.Count(text[:off], "\n") + 1
}

// Occurrences returns the byte offset of every non-overlapping match of sub.
func Occurrences(text, sub string) []int {
	if sub == "" {
		return nil
	}
	var offsets []int
	for start := 0; ; {
		i := strings.Index(text[start:], sub)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, start+i)
		start += i + len(sub)
	}
}
