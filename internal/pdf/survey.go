// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import "sort"

// headerSizeCount is how many of the largest distinct font sizes count as
// heading sizes.
const headerSizeCount = 3

// FontSurvey is the document-wide font-size census taken before any page
// is laid out.
type FontSurvey struct {
	// Histogram counts glyphs per font size.
	Histogram map[float64]int

	// Sizes lists the distinct sizes, largest first.
	Sizes []float64
}

// Survey counts the font size of every glyph with a known (positive)
// size across all pages.
func Survey(pages []Page) FontSurvey {
	s := FontSurvey{Histogram: make(map[float64]int)}
	for _, p := range pages {
		for _, c := range p.Chars() {
			if c.FontSize <= 0 {
				continue
			}
			s.Histogram[c.FontSize]++
		}
	}

	s.Sizes = make([]float64, 0, len(s.Histogram))
	for size := range s.Histogram {
		s.Sizes = append(s.Sizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(s.Sizes)))
	return s
}

// HeaderSizes returns the heading sizes: the three largest distinct
// sizes, or fewer when the document has fewer.
func (s FontSurvey) HeaderSizes() []float64 {
	if len(s.Sizes) <= headerSizeCount {
		return s.Sizes
	}
	return s.Sizes[:headerSizeCount]
}

// HeaderLevel returns 1 + the rank of size among the distinct sizes. It
// reports false for sizes outside the heading sizes, so levels are 1-3.
// Ranking is by magnitude only; frequency does not matter.
func (s FontSurvey) HeaderLevel(size float64) (int, bool) {
	for i, hs := range s.HeaderSizes() {
		if hs == size {
			return i + 1, true
		}
	}
	return 0, false
}
