package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Document
	}{
		{name: "lf", raw: "a\nb\n", want: Document{Text: "a\nb\n"}},
		{name: "crlf", raw: "a\r\nb\r\n", want: Document{Text: "a\nb\n", CRLF: true}},
		{name: "mixed stays raw", raw: "a\r\nb\n", want: Document{Text: "a\r\nb\n"}},
		{name: "no newline", raw: "abc", want: Document{Text: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument(tt.raw)
			assert.Equal(t, tt.want, doc)
			assert.Equal(t, tt.raw, doc.Raw())
		})
	}
}

func TestDocument_Normalize(t *testing.T) {
	crlf := Document{CRLF: true}
	assert.Equal(t, "x\ny", crlf.Normalize("x\r\ny"))
	assert.Equal(t, "x\r\ny", Document{}.Normalize("x\r\ny"))
}

func TestLinesAndJoin(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{""}, Lines("\n"))
	assert.Equal(t, []string{"a", "b"}, Lines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, Lines("a\nb"))
	assert.Equal(t, []string{"a", "", "b"}, Lines("a\n\nb"))

	assert.Equal(t, "a\nb\n", JoinLines([]string{"a", "b"}, true))
	assert.Equal(t, "a\nb", JoinLines([]string{"a", "b"}, false))
	assert.Equal(t, "", JoinLines(nil, true))
}

func TestLineAtAndOccurrences(t *testing.T) {
	text := "foo\nbar foo\nbaz\nfoo"

	offsets := Occurrences(text, "foo")
	assert.Equal(t, []int{0, 8, 16}, offsets)

	var lines []int
	for _, off := range offsets {
		lines = append(lines, LineAt(text, off))
	}
	assert.Equal(t, []int{1, 2, 4}, lines)

	assert.Equal(t, []int{0, 2}, Occurrences("aaaa", "aa"), "matches do not overlap")
	assert.Nil(t, Occurrences(text, ""))
	assert.Nil(t, Occurrences(text, "qux"))
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("plain text"), 0))
	assert.True(t, IsBinaryContent([]byte("a\x00b"), 0))
	assert.False(t, IsBinaryContent([]byte{0xFF, 0xFE, 'a', 0x00}, 0), "utf-16 bom")

	late := append(make([]byte, 0, 20), []byte("0123456789")...)
	late = append(late, 0)
	assert.False(t, IsBinaryContent(late, 5), "nul beyond the sample is not inspected")
	assert.True(t, IsBinaryContent(late, 20))
}
