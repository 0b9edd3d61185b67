// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"math"
	"sort"
	"strings"
)

// ExtractWords groups glyphs into words. Glyphs are clustered into rows
// by Top (within YTolerance of the previous glyph in the row) and each
// row is read left to right. A word ends at a blank glyph unless
// KeepBlankChars is set, at a horizontal gap wider than XTolerance, or
// where the font name or size changes.
func ExtractWords(chars []Char, opts WordOptions) []Word {
	var words []Word
	for _, row := range clusterRows(chars, opts.YTolerance) {
		var cur []Char
		flush := func() {
			if len(cur) > 0 {
				words = append(words, mergeWord(cur))
				cur = nil
			}
		}

		for _, c := range row {
			if !opts.KeepBlankChars && strings.TrimSpace(c.Text) == "" {
				flush()
				continue
			}
			if len(cur) > 0 {
				prev := cur[len(cur)-1]
				if c.X0 > prev.X1+opts.XTolerance ||
					c.FontName != prev.FontName ||
					c.FontSize != prev.FontSize {
					flush()
				}
			}
			cur = append(cur, c)
		}
		flush()
	}
	return words
}

// clusterRows sorts glyphs top to bottom and splits them into rows. Each
// row is sorted by X0; ties keep content-stream order.
func clusterRows(chars []Char, tolerance float64) [][]Char {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]Char, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var rows [][]Char
	row := []Char{sorted[0]}
	for _, c := range sorted[1:] {
		if c.Top-row[len(row)-1].Top > tolerance {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, c)
	}
	rows = append(rows, row)

	for _, r := range rows {
		sort.SliceStable(r, func(i, j int) bool {
			return r[i].X0 < r[j].X0
		})
	}
	return rows
}

func mergeWord(chars []Char) Word {
	var text strings.Builder
	left, top := math.Inf(1), math.Inf(1)
	right, bottom := math.Inf(-1), math.Inf(-1)
	for _, c := range chars {
		text.WriteString(c.Text)
		left = math.Min(left, c.X0)
		right = math.Max(right, c.X1)
		top = math.Min(top, c.Top)
		bottom = math.Max(bottom, c.Bottom)
	}
	return Word{
		Text:        text.String(),
		FontSize:    chars[0].FontSize,
		FontName:    chars[0].FontName,
		StrokeColor: chars[0].StrokeColor,
		Top:         top,
		Left:        left,
		Width:       right - left,
		Height:      bottom - top,
	}
}
