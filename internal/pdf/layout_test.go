// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(elems []element) []elementKind {
	out := make([]elementKind, len(elems))
	for i, e := range elems {
		out[i] = e.kind
	}
	return out
}

func TestGroupLines_Boundary(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   []elementKind
	}{
		{"exactly half the height stays", 5, []elementKind{elemWord, elemWord, elemLineBreak}},
		{"just over half starts a line", 5.0001, []elementKind{elemWord, elemLineBreak, elemWord, elemLineBreak}},
		{"above the reference counts too", -5.0001, []elementKind{elemWord, elemLineBreak, elemWord, elemLineBreak}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := []Word{
				{Text: "a", Top: 100, Height: 10},
				{Text: "b", Top: 100 + tt.offset, Height: 10},
			}
			assert.Equal(t, tt.want, kinds(groupLines(words)))
		})
	}
}

func TestGroupLines_ReferenceIsLineStart(t *testing.T) {
	// Each step is within tolerance of its predecessor, but the third word
	// is 8 below the line's first word, which exceeds half its height.
	words := []Word{
		{Text: "a", Top: 100, Height: 10},
		{Text: "b", Top: 104, Height: 10},
		{Text: "c", Top: 108, Height: 10},
	}
	assert.Equal(t,
		[]elementKind{elemWord, elemWord, elemLineBreak, elemWord, elemLineBreak},
		kinds(groupLines(words)))
}

func TestLayout_PageBreaks(t *testing.T) {
	pages := [][]Word{
		{{Text: "a", Top: 10, Height: 10}},
		nil,
		{{Text: "b", Top: 10, Height: 10}},
	}
	assert.Equal(t,
		[]elementKind{elemWord, elemLineBreak, elemPageBreak, elemPageBreak, elemWord, elemLineBreak},
		kinds(layout(pages)))
}

func TestClassify(t *testing.T) {
	survey := Survey([]Page{&fakePage{chars: sizedChars(20, 16, 14, 10)}})
	words := []Word{
		{Text: "h", FontSize: 20, FontName: "Arial"},
		{Text: "b", FontSize: 10, FontName: "Arial-BoldMT"},
		{Text: "i", FontSize: 10, FontName: "Arial-ItalicMT"},
		{Text: "bi", FontSize: 10, FontName: "Arial-BoldItalicMT"},
		{Text: "ink", FontSize: 10, FontName: "Arial", StrokeColor: []float64{0, 0, 0}},
		{Text: "gray", FontSize: 10, FontName: "Arial", StrokeColor: []float64{0}},
		{Text: "red", FontSize: 10, FontName: "Arial", StrokeColor: []float64{1, 0, 0}},
	}

	Classify(words, survey)

	type flags struct{ header, bold, italic bool }
	want := []flags{
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{false, true, true},
		{false, true, false},
		{false, false, false},
		{false, false, false},
	}
	for i, w := range words {
		assert.Equal(t, want[i], flags{w.Header, w.Bold, w.Italic}, "word %q", w.Text)
	}
}

func TestRenderWord(t *testing.T) {
	survey := Survey([]Page{&fakePage{chars: sizedChars(30, 20, 15, 10)}})
	tests := []struct {
		word Word
		want string
	}{
		{Word{Text: "Top", FontSize: 30, Header: true}, "# Top"},
		{Word{Text: "Mid", FontSize: 15, Header: true, Bold: true}, "### Mid"},
		{Word{Text: "x", Bold: true, Italic: true}, "***x***"},
		{Word{Text: "x", Bold: true}, "**x**"},
		{Word{Text: "x", Italic: true}, "*x*"},
		{Word{Text: "x"}, "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderWord(tt.word, survey))
	}
}

func TestEmit(t *testing.T) {
	w := func(s string) element { return element{kind: elemWord, word: Word{Text: s}} }
	lb := element{kind: elemLineBreak}
	pb := element{kind: elemPageBreak}

	tests := []struct {
		name  string
		elems []element
		want  string
	}{
		{"empty", nil, ""},
		{"words concatenate without separator", []element{w("Hello"), w("world"), lb}, "Helloworld"},
		{"embedded spaces survive, ends trimmed", []element{w(" Hello "), w("world "), lb}, "Hello world"},
		{"lines separated by blank line", []element{w("a"), lb, w("b"), lb}, "a\n\nb"},
		{"blank lines dropped", []element{w("a"), lb, w("  "), lb, w("b"), lb}, "a\n\nb"},
		{"pages joined", []element{w("a"), lb, pb, w("b"), lb}, "a\n\nb"},
		{"empty page contributes nothing", []element{w("a"), lb, pb, pb, w("b"), lb}, "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emit(tt.elems, FontSurvey{}))
		})
	}
}
