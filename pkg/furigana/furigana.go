// Package furigana segments Japanese text and builds bracket-notation
// reading annotations like [漢](かん)[字](じ).
package furigana

import "strings"

// Segment is one run of text. Kanji segments are always a single
// character so each can carry its own furigana.
type Segment struct {
	Text     string `json:"text"`
	Furigana string `json:"furigana"`
	IsKanji  bool   `json:"isKanji"`
}

// IsKanji reports whether r falls in the CJK Unified Ideographs block
// (U+4E00–U+9FFF).
func IsKanji(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// ExtractKanji returns every ideograph in s, in order of appearance,
// duplicates included.
func ExtractKanji(s string) []rune {
	var out []rune
	for _, r := range s {
		if IsKanji(r) {
			out = append(out, r)
		}
	}
	return out
}

// Parse splits text into segments: each kanji becomes its own segment,
// everything between kanji is lumped into one run.
func Parse(text string) []Segment {
	var segments []Segment
	var run []rune
	runIsKanji := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		if runIsKanji {
			// One segment per character so furigana attaches per kanji.
			for _, r := range run {
				segments = append(segments, Segment{Text: string(r), IsKanji: true})
			}
		} else {
			segments = append(segments, Segment{Text: string(run)})
		}
		run = run[:0]
	}

	for _, r := range text {
		k := IsKanji(r)
		if len(run) > 0 && k != runIsKanji {
			flush()
		}
		runIsKanji = k
		run = append(run, r)
	}
	flush()

	return segments
}

// Build renders segments in bracket notation. Kanji segments without a
// furigana reading are emitted bare.
func Build(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.IsKanji && seg.Furigana != "" {
			b.WriteString("[")
			b.WriteString(seg.Text)
			b.WriteString("](")
			b.WriteString(seg.Furigana)
			b.WriteString(")")
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
