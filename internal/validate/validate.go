// Package validate merges raw entries with schema defaults and applies
// the per-collection structural rules.
package validate

import (
	"fmt"
	"strings"

	"github.com/picotan/picotan-backend/internal/domain"
	"github.com/picotan/picotan-backend/internal/schema"
	"github.com/picotan/picotan-backend/pkg/furigana"
)

// checkFunc inspects a merged document and returns every violated rule.
type checkFunc func(domain.Document) []domain.FieldError

// validators dispatches the structural check for each document kind.
// Adding a kind means adding a schema entry and a row here.
var validators = map[domain.Collection]checkFunc{
	domain.CollectionRadicals:   checkRadical,
	domain.CollectionKanji:      checkKanji,
	domain.CollectionWords:      checkWord,
	domain.CollectionYojijukugo: checkYojijukugo,
	domain.CollectionKotowaza:   checkKotowaza,
	domain.CollectionSentences:  checkSentence,
}

// ValidateAndPrepare merges raw with the collection's schema defaults
// and runs the collection's structural check. Fields absent from raw
// get a freshly built default; fields the caller supplied are copied
// verbatim, with no type coercion. Fields outside the schema are
// dropped. On success the merged document is returned; on failure the
// error carries the complete violation list.
func ValidateAndPrepare(c domain.Collection, raw domain.Document) (domain.Document, error) {
	s, err := schema.Get(c)
	if err != nil {
		return nil, err
	}

	merged := make(domain.Document, len(s))
	for name, field := range s {
		if v, ok := raw[name]; ok {
			merged[name] = v
		} else {
			merged[name] = field.Default()
		}
	}

	if check, ok := validators[c]; ok {
		if errs := check(merged); len(errs) > 0 {
			return nil, domain.NewValidationErrors(c, errs)
		}
	}

	return merged, nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func blankString(v any) bool {
	s, ok := v.(string)
	return !ok || strings.TrimSpace(s) == ""
}

// requireNonBlank appends a violation unless doc[key] is a non-blank string.
func requireNonBlank(errs []domain.FieldError, doc domain.Document, key string) []domain.FieldError {
	if blankString(doc[key]) {
		errs = append(errs, domain.FieldError{Field: key, Message: "required and cannot be empty"})
	}
	return errs
}

// requireNestedJapanese appends a violation unless doc[key].japanese is
// a non-blank string.
func requireNestedJapanese(errs []domain.FieldError, doc domain.Document, key string) []domain.FieldError {
	field := key + ".japanese"
	m, ok := doc.Map(key)
	if !ok || blankString(m["japanese"]) {
		errs = append(errs, domain.FieldError{Field: field, Message: "required and cannot be empty"})
	}
	return errs
}

// requireNonEmptyList appends a violation unless doc[key] is a list with
// at least one element.
func requireNonEmptyList(errs []domain.FieldError, doc domain.Document, key string) []domain.FieldError {
	l, ok := doc.Slice(key)
	if !ok || len(l) == 0 {
		errs = append(errs, domain.FieldError{Field: key, Message: "must be a non-empty array"})
	}
	return errs
}

// checkReadingList validates a flat reading list ({reading, furigana}
// elements): the list must be non-empty and every reading non-blank.
func checkReadingList(errs []domain.FieldError, doc domain.Document) []domain.FieldError {
	readings, ok := doc.Slice("readings")
	if !ok || len(readings) == 0 {
		return append(errs, domain.FieldError{Field: "readings", Message: "must be a non-empty array"})
	}
	for i, r := range readings {
		elem, ok := r.(map[string]any)
		if !ok || blankString(elem["reading"]) {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings[%d].reading", i),
				Message: "must be a non-empty string",
			})
		}
	}
	return errs
}

// checkMeaningList validates a meanings list: non-empty, at least one
// entry with a non-blank japanese, every japanese non-blank, and
// english a string when present.
func checkMeaningList(errs []domain.FieldError, doc domain.Document) []domain.FieldError {
	meanings, ok := doc.Slice("meanings")
	if !ok || len(meanings) == 0 {
		return append(errs, domain.FieldError{Field: "meanings", Message: "must be a non-empty array"})
	}

	hasJapanese := false
	for _, m := range meanings {
		if elem, ok := m.(map[string]any); ok && !blankString(elem["japanese"]) {
			hasJapanese = true
			break
		}
	}
	if !hasJapanese {
		errs = append(errs, domain.FieldError{
			Field:   "meanings",
			Message: "at least one entry must have a non-empty 'japanese'",
		})
	}

	for i, m := range meanings {
		elem, ok := m.(map[string]any)
		if !ok || blankString(elem["japanese"]) {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("meanings[%d].japanese", i),
				Message: "required and cannot be empty",
			})
			continue
		}
		if en, present := elem["english"]; present {
			if _, isStr := en.(string); !isStr {
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("meanings[%d].english", i),
					Message: "must be a string if provided",
				})
			}
		}
	}
	return errs
}

// ---------------------------------------------------------------------------
// Per-collection checks
// ---------------------------------------------------------------------------

func checkRadical(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "character")
	errs = requireNonEmptyList(errs, doc, "names")
	errs = requireNestedJapanese(errs, doc, "meaning")
	return errs
}

func checkKanji(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "character")
	errs = requireNonBlank(errs, doc, "radical")
	errs = checkKanjiReadings(errs, doc)
	errs = checkMeaningList(errs, doc)
	errs = requireNonEmptyList(errs, doc, "categories")
	errs = requireNonEmptyList(errs, doc, "references")
	return errs
}

// checkKanjiReadings validates the two-list readings struct. At least
// one of on/kun must be non-empty; on elements need a non-blank reading
// and a tags list, kun elements need string reading/okurigana and a
// tags list.
func checkKanjiReadings(errs []domain.FieldError, doc domain.Document) []domain.FieldError {
	readings, _ := doc.Map("readings")

	on, onOK := readings.Slice("on")
	kun, kunOK := readings.Slice("kun")

	if !onOK {
		errs = append(errs, domain.FieldError{Field: "readings.on", Message: "must be an array"})
	}
	if !kunOK {
		errs = append(errs, domain.FieldError{Field: "readings.kun", Message: "must be an array"})
	}
	if onOK && kunOK && len(on) == 0 && len(kun) == 0 {
		errs = append(errs, domain.FieldError{
			Field:   "readings",
			Message: "must have at least one reading in on[] or kun[]",
		})
	}

	for i, r := range on {
		elem, ok := r.(map[string]any)
		if !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.on[%d]", i),
				Message: "must be an object",
			})
			continue
		}
		if blankString(elem["reading"]) {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.on[%d].reading", i),
				Message: "must be a non-empty string",
			})
		}
		if _, ok := elem["tags"].([]any); !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.on[%d].tags", i),
				Message: "must be an array",
			})
		}
	}

	for i, r := range kun {
		elem, ok := r.(map[string]any)
		if !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.kun[%d]", i),
				Message: "must be an object",
			})
			continue
		}
		if _, ok := elem["reading"].(string); !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.kun[%d].reading", i),
				Message: "must be a string",
			})
		}
		if _, ok := elem["okurigana"].(string); !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.kun[%d].okurigana", i),
				Message: "must be a string",
			})
		}
		if _, ok := elem["tags"].([]any); !ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("readings.kun[%d].tags", i),
				Message: "must be an array",
			})
		}
	}

	return errs
}

func checkWord(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "word")
	errs = checkMeaningList(errs, doc)
	errs = checkReadingList(errs, doc)
	return errs
}

func checkYojijukugo(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "idiom")
	errs = checkReadingList(errs, doc)
	errs = requireNestedJapanese(errs, doc, "meaning")
	errs = requireNestedJapanese(errs, doc, "explanation")
	errs = requireNonEmptyList(errs, doc, "references")
	return errs
}

// checkKotowaza differs from yojijukugo in two deliberate ways: the
// combined meaning object is stored under the plural key "meanings",
// and references stay optional.
func checkKotowaza(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "proverb")
	errs = checkReadingList(errs, doc)
	errs = requireNestedJapanese(errs, doc, "meanings")
	errs = requireNestedJapanese(errs, doc, "explanation")
	return errs
}

func checkSentence(doc domain.Document) []domain.FieldError {
	var errs []domain.FieldError
	errs = requireNonBlank(errs, doc, "sentence")

	words, ok := doc.Slice("words_in_sentence")
	if !ok || len(words) < 2 {
		errs = append(errs, domain.FieldError{
			Field:   "words_in_sentence",
			Message: "must be an array of at least 2 items",
		})
	}

	// Every ideograph in the sentence must appear somewhere in the
	// concatenation of the words. The check is naive substring
	// containment over the joined words, not per-word matching, so a
	// kanji spanning two adjacent words' text still passes.
	sentence, _ := doc.String("sentence")
	var joined strings.Builder
	for _, w := range words {
		if s, ok := w.(string); ok {
			joined.WriteString(s)
		}
	}
	for _, k := range furigana.ExtractKanji(sentence) {
		if !strings.ContainsRune(joined.String(), k) {
			errs = append(errs, domain.FieldError{
				Field:   "words_in_sentence",
				Message: fmt.Sprintf("kanji %q in sentence not found in words_in_sentence", string(k)),
			})
		}
	}

	return errs
}
