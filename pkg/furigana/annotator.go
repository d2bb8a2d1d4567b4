package furigana

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Annotator fills in furigana readings using morphological analysis.
// The zero value is not usable; create one with NewAnnotator.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator creates an Annotator backed by the bundled IPA dictionary.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Annotate tokenizes text and returns segments with readings attached.
// Tokens containing kanji become one segment carrying the token's
// reading in hiragana; everything else passes through as plain text.
func (a *Annotator) Annotate(text string) []Segment {
	var segments []Segment

	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}

		if !containsKanji(token.Surface) {
			segments = append(segments, Segment{Text: token.Surface})
			continue
		}

		reading := ""
		// IPA feature 7 is the reading in katakana.
		if features := token.Features(); len(features) > 7 && features[7] != "*" {
			reading = katakanaToHiragana(features[7])
		}
		segments = append(segments, Segment{
			Text:     token.Surface,
			Furigana: reading,
			IsKanji:  true,
		})
	}

	return segments
}

// AnnotateString is a convenience wrapper returning bracket notation.
func (a *Annotator) AnnotateString(text string) string {
	return Build(a.Annotate(text))
}

func containsKanji(s string) bool {
	return strings.ContainsFunc(s, IsKanji)
}

// katakanaToHiragana shifts katakana code points into the hiragana
// block; other runes are untouched.
func katakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - ('ァ' - 'ぁ')
		}
		return r
	}, s)
}
