package charset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const russianSample = `Однажды весною, в час небывало жаркого заката, в Москве, на Патриарших прудах,
появились два гражданина. Первый из них, одетый в летнюю серенькую пару, был маленького роста,
упитан, лыс, свою приличную шляпу пирожком нес в руке, а на хорошо выбритом лице его помещались
сверхъестественных размеров очки в черной роговой оправе. Второй - плечистый, рыжеватый,
вихрастый молодой человек в заломленной на затылок клетчатой кепке - был в ковбойке,
жеваных белых брюках и в черных тапочках.
`

const cp1251Source = `# -*- coding: cp1251 -*-

# Тестовый файл с кириллицей
text = "Привет, мир!"
numbers = [1, 2, 3, 4, 5]
message = "Это тестовая строка"
`

func TestChardetDetector_FastPaths(t *testing.T) {
	d := NewChardetDetector()

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "ascii", input: []byte("plain ascii text\n"), want: "utf-8"},
		{name: "utf-8 cyrillic", input: []byte("Привет, мир!"), want: "utf-8"},
		{name: "utf-16le bom", input: []byte{0xFF, 0xFE, 'h', 0}, want: "utf-16le"},
		{name: "utf-16be bom", input: []byte{0xFE, 0xFF, 0, 'h'}, want: "utf-16be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, confidence := d.Detect(tt.input)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, 1.0, confidence)
		})
	}
}

func TestChardetDetector_SingleByteCyrillic(t *testing.T) {
	d := NewChardetDetector()

	tests := []struct {
		name     string
		text     string
		encoding string
	}{
		{name: "cp1251 prose", text: strings.Repeat(russianSample, 3), encoding: "windows-1251"},
		{name: "koi8-r prose", text: strings.Repeat(russianSample, 3), encoding: "koi8-r"},
		{name: "cp1251 source file", text: cp1251Source, encoding: "windows-1251"},
		{name: "cp1251 short line", text: "Привет, мир! Текст в кодировке CP1251.", encoding: "windows-1251"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.text, tt.encoding)
			require.NoError(t, err)

			name, confidence := d.Detect(raw)

			assert.Equal(t, tt.encoding, name)
			assert.GreaterOrEqual(t, confidence, DefaultConfidenceThreshold)
			assert.LessOrEqual(t, confidence, 1.0)

			again, againConfidence := d.Detect(raw)
			assert.Equal(t, name, again, "detection must be deterministic")
			assert.Equal(t, confidence, againConfidence)
		})
	}
}

func TestChardetDetector_UntrustedGuess(t *testing.T) {
	d := NewChardetDetector()
	raw := make([]byte, 0, 16)
	for b := byte(0x80); b < 0x90; b++ {
		raw = append(raw, b)
	}

	name, confidence := d.Detect(raw)

	if name != "" {
		assert.Less(t, confidence, DefaultConfidenceThreshold)
	}
}

func TestCalibrate(t *testing.T) {
	tests := []struct {
		name           string
		cands          []candidate
		wantName       string
		wantConfidence float64
	}{
		{name: "no candidates", wantName: "", wantConfidence: 0},
		{
			name:           "weak winner keeps raw score",
			cands:          []candidate{{name: "iso-8859-1", score: 12}},
			wantName:       "iso-8859-1",
			wantConfidence: 0.12,
		},
		{
			name:           "sole candidate",
			cands:          []candidate{{name: "windows-1251", score: 30}},
			wantName:       "windows-1251",
			wantConfidence: 1.0,
		},
		{
			name:           "double the runner-up",
			cands:          []candidate{{name: "windows-1251", score: 40}, {name: "koi8-r", score: 20}},
			wantName:       "windows-1251",
			wantConfidence: 0.9,
		},
		{
			name:           "tie",
			cands:          []candidate{{name: "iso-8859-1", score: 30}, {name: "windows-1252", score: 30}},
			wantName:       "iso-8859-1",
			wantConfidence: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, confidence := calibrate(tt.cands)
			assert.Equal(t, tt.wantName, name)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
		})
	}
}

func TestEvidence(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{
			name:  "keeps only non-ascii words",
			input: []byte("text = \"\xcf\xf0\xe8\", mir\n# \xfd\xf2\xee"),
			want:  []byte("\xcf\xf0\xe8 \xfd\xf2\xee"),
		},
		{name: "ascii only falls back to input", input: []byte("plain words"), want: []byte("plain words")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evidence(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "gb18030", normalizeName("GB-18030"))
	assert.Equal(t, "windows-1251", normalizeName("windows-1251"))
	assert.Equal(t, "shift_jis", normalizeName(" Shift_JIS "))
}
