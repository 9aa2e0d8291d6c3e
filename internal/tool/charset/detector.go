package charset

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// Detector guesses the character encoding of raw bytes.
// Implementations must be deterministic for identical input.
type Detector interface {
	Detect(data []byte) (name string, confidence float64)
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

const (
	// sampleSize bounds the bytes handed to the statistical detector.
	sampleSize = 64 * 1024

	// minScore is the raw chardet score (0-100) below which a guess is
	// reported with its raw confidence and never trusted.
	minScore = 20

	// runnerUpWeight scales how much a competing candidate lowers confidence.
	// A winner scoring twice its runner-up lands exactly on 0.9.
	runnerUpWeight = 0.2
)

// ChardetDetector detects encodings with a statistical n-gram detector.
// Valid UTF-8 and UTF-16 byte-order marks are recognised up front so
// plain ASCII files never depend on the statistical guess.
type ChardetDetector struct {
	text *chardet.Detector
}

// NewChardetDetector creates a detector for text content.
func NewChardetDetector() *ChardetDetector {
	return &ChardetDetector{text: chardet.NewTextDetector()}
}

// candidate is one decodable guess with chardet's raw score.
type candidate struct {
	name  string
	score int
}

// Detect returns the encoding label and a confidence in [0,1].
// An empty name means nothing could be inferred.
//
// chardet scores single-byte charsets by n-gram hit rate, so real text
// rarely scores above 40 and ASCII identifiers pull Latin charsets up.
// Only words containing non-ASCII bytes are scored, candidates that cannot
// decode data are discarded, and confidence reflects the winner's margin
// over the runner-up rather than chardet's absolute score.
func (d *ChardetDetector) Detect(data []byte) (string, float64) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE):
		return "utf-16le", 1.0
	case bytes.HasPrefix(data, bomUTF16BE):
		return "utf-16be", 1.0
	case utf8.Valid(data):
		return DefaultEncoding, 1.0
	}

	results, err := d.text.DetectAll(evidence(data))
	if err != nil {
		return "", 0
	}
	return calibrate(decodable(results, data))
}

// evidence keeps the words of the sample that contain non-ASCII bytes.
// Words are split on bytes below 0x40 (controls, space, digits, punctuation)
// which never occur as trail bytes of the supported multi-byte charsets.
func evidence(data []byte) []byte {
	if len(data) > sampleSize {
		data = data[:sampleSize]
	}

	var out []byte
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := data[start:end]
		start = -1
		if !hasHighByte(word) {
			return
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, word...)
	}
	for i, b := range data {
		if b < 0x40 {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(data))

	if len(out) == 0 {
		return data
	}
	return out
}

func hasHighByte(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// decodable normalises chardet results, drops names the codec does not
// support or that fail to decode data, and ranks the rest by descending
// score. Ties are broken by name since chardet's own order is not stable.
func decodable(results []chardet.Result, data []byte) []candidate {
	best := make(map[string]int, len(results))
	for _, r := range results {
		name := normalizeName(r.Charset)
		if r.Confidence > best[name] {
			best[name] = r.Confidence
		}
	}

	out := make([]candidate, 0, len(best))
	for name, score := range best {
		if !Supported(name) {
			continue
		}
		if _, err := Decode(data, name); err != nil {
			continue
		}
		out = append(out, candidate{name: name, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].name < out[j].name
	})
	return out
}

// calibrate turns ranked candidates into a name and confidence.
func calibrate(cands []candidate) (string, float64) {
	if len(cands) == 0 {
		return "", 0
	}

	top := cands[0]
	if top.score < minScore {
		return top.name, float64(top.score) / 100
	}
	if len(cands) == 1 {
		return top.name, 1.0
	}

	runnerUp := cands[1].score
	if runnerUp > top.score {
		runnerUp = top.score
	}
	return top.name, 1 - runnerUpWeight*float64(runnerUp)/float64(top.score)
}

// normalizeName maps detector charset names onto labels the codec understands.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "gb-18030":
		return "gb18030"
	case "iso-8859-8-i":
		return "iso-8859-8"
	}
	return name
}
