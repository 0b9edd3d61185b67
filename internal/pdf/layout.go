// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"math"
	"strings"
)

// lineTolerance is the fraction of a word's height its top may drift from
// the line's reference top before the word starts a new line.
const lineTolerance = 0.5

type elementKind int

const (
	elemWord elementKind = iota
	elemLineBreak
	elemPageBreak
)

// element is one entry of the flat layout stream: a word or a marker.
type element struct {
	kind elementKind
	word Word
}

// Classify sets the Header, Bold and Italic flags of each word. A word is
// bold when its font name contains "Bold" or its stroke colour is pure
// black; italic when the font name contains "Italic".
func Classify(words []Word, survey FontSurvey) {
	for i := range words {
		w := &words[i]
		_, w.Header = survey.HeaderLevel(w.FontSize)
		w.Bold = strings.Contains(w.FontName, "Bold") || isPureBlack(w.StrokeColor)
		w.Italic = strings.Contains(w.FontName, "Italic")
	}
}

func isPureBlack(c []float64) bool {
	return len(c) == 3 && c[0] == 0 && c[1] == 0 && c[2] == 0
}

// groupLines splits words, in reading order, into lines. A word whose top
// differs from the current line's reference top by strictly more than
// half its height opens a new line. Every line, including the last, is
// followed by a line-break marker.
func groupLines(words []Word) []element {
	var (
		out  []element
		line []Word
		ref  float64
	)
	flush := func() {
		for _, w := range line {
			out = append(out, element{kind: elemWord, word: w})
		}
		out = append(out, element{kind: elemLineBreak})
		line = nil
	}

	for _, w := range words {
		if len(line) > 0 && math.Abs(w.Top-ref) > w.Height*lineTolerance {
			flush()
		}
		if len(line) == 0 {
			ref = w.Top
		}
		line = append(line, w)
	}
	if len(line) > 0 {
		flush()
	}
	return out
}

// layout turns classified pages into the element stream, with a page
// break between consecutive pages.
func layout(pages [][]Word) []element {
	var out []element
	for i, words := range pages {
		out = append(out, groupLines(words)...)
		if i < len(pages)-1 {
			out = append(out, element{kind: elemPageBreak})
		}
	}
	return out
}

// renderWord formats a single word. Heading words get an ATX prefix for
// their level; other words are wrapped by their bold/italic state.
func renderWord(w Word, survey FontSurvey) string {
	if w.Header {
		level, _ := survey.HeaderLevel(w.FontSize)
		return strings.Repeat("#", level) + " " + w.Text
	}
	switch {
	case w.Bold && w.Italic:
		return "***" + w.Text + "***"
	case w.Bold:
		return "**" + w.Text + "**"
	case w.Italic:
		return "*" + w.Text + "*"
	default:
		return w.Text
	}
}

// emit renders the element stream. Words on a line are concatenated with
// no separator; blank lines are dropped. Lines of a page are separated by
// a blank line, as are non-empty pages.
func emit(elems []element, survey FontSurvey) string {
	var (
		pages []string
		lines []string
		acc   strings.Builder
	)
	endPage := func() {
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n\n"))
		}
		lines = nil
	}

	for _, e := range elems {
		switch e.kind {
		case elemWord:
			acc.WriteString(renderWord(e.word, survey))
		case elemLineBreak:
			if line := strings.TrimSpace(acc.String()); line != "" {
				lines = append(lines, line)
			}
			acc.Reset()
		case elemPageBreak:
			endPage()
		}
	}
	endPage()
	return strings.Join(pages, "\n\n")
}
