// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphs lays out s as 6pt-wide glyphs starting at x on the row at top.
func glyphs(s string, x, top, size float64, font string) []Char {
	var out []Char
	for _, r := range s {
		out = append(out, Char{
			Text:     string(r),
			FontName: font,
			FontSize: size,
			X0:       x,
			X1:       x + 6,
			Top:      top,
			Bottom:   top + size,
		})
		x += 6
	}
	return out
}

func texts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

var defaultOpts = WordOptions{XTolerance: 3, YTolerance: 3}

func TestExtractWords_SplitsOnBlanks(t *testing.T) {
	chars := glyphs("Hello world", 10, 100, 12, "Helvetica")

	words := ExtractWords(chars, defaultOpts)

	assert.Equal(t, []string{"Hello", "world"}, texts(words))
	assert.Equal(t, 10.0, words[0].Left)
	assert.Equal(t, 30.0, words[0].Width)
	assert.Equal(t, 100.0, words[0].Top)
	assert.Equal(t, 12.0, words[0].Height)
	assert.Equal(t, "Helvetica", words[0].FontName)
	assert.Equal(t, 12.0, words[0].FontSize)
}

func TestExtractWords_KeepBlankChars(t *testing.T) {
	chars := glyphs("Hello world", 10, 100, 12, "Helvetica")

	words := ExtractWords(chars, WordOptions{XTolerance: 3, YTolerance: 3, KeepBlankChars: true})

	assert.Equal(t, []string{"Hello world"}, texts(words))
}

func TestExtractWords_SplitsOnGap(t *testing.T) {
	chars := append(glyphs("ab", 10, 100, 12, "F"), glyphs("cd", 30, 100, 12, "F")...)

	words := ExtractWords(chars, defaultOpts)

	// "ab" ends at x=22; "cd" starts at 30, a gap of 8 > 3.
	assert.Equal(t, []string{"ab", "cd"}, texts(words))
}

func TestExtractWords_SplitsOnFontChange(t *testing.T) {
	chars := append(glyphs("ab", 10, 100, 12, "F"), glyphs("cd", 22, 100, 12, "F-Bold")...)
	chars = append(chars, glyphs("ef", 34, 100, 14, "F-Bold")...)

	words := ExtractWords(chars, defaultOpts)

	assert.Equal(t, []string{"ab", "cd", "ef"}, texts(words))
}

func TestExtractWords_ReadingOrder(t *testing.T) {
	// Content stream order is bottom row first, right word first.
	var chars []Char
	chars = append(chars, glyphs("last", 10, 200, 12, "F")...)
	chars = append(chars, glyphs("second", 100, 101, 12, "F")...)
	chars = append(chars, glyphs("first", 10, 100, 12, "F")...)

	words := ExtractWords(chars, defaultOpts)

	require.Len(t, words, 3)
	assert.Equal(t, []string{"first", "second", "last"}, texts(words))
	assert.Equal(t, 101.0, words[1].Top, "second word keeps its own top")
}

func TestExtractWords_Empty(t *testing.T) {
	assert.Empty(t, ExtractWords(nil, defaultOpts))
	assert.Empty(t, ExtractWords(glyphs("   ", 0, 0, 10, "F"), defaultOpts))
}
