package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotan/picotan-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func validRadical() domain.Document {
	return domain.Document{
		"character": "氵",
		"names":     []any{"さんずい"},
		"meaning":   map[string]any{"japanese": "水", "english": "water"},
	}
}

func validKanji() domain.Document {
	return domain.Document{
		"character": "水",
		"radical":   "水",
		"readings": map[string]any{
			"on":  []any{map[string]any{"reading": "スイ", "tags": []any{}}},
			"kun": []any{map[string]any{"reading": "みず", "okurigana": "", "tags": []any{}}},
		},
		"meanings":   []any{map[string]any{"japanese": "みず", "english": "water"}},
		"categories": []any{"jouyou"},
		"references": []any{"漢検漢字辞典"},
	}
}

func validWord() domain.Document {
	return domain.Document{
		"word":     "勉強",
		"readings": []any{map[string]any{"reading": "べんきょう", "furigana": "[勉](べん)[強](きょう)"}},
		"meanings": []any{map[string]any{"japanese": "学習すること", "english": "study"}},
	}
}

func validYojijukugo() domain.Document {
	return domain.Document{
		"idiom":       "一石二鳥",
		"readings":    []any{map[string]any{"reading": "いっせきにちょう"}},
		"meaning":     map[string]any{"japanese": "一つの行為で二つの利益を得ること"},
		"explanation": map[string]any{"japanese": "一つの石で二羽の鳥を落とす意から"},
		"references":  []any{"四字熟語辞典"},
	}
}

func validKotowaza() domain.Document {
	return domain.Document{
		"proverb":     "猿も木から落ちる",
		"readings":    []any{map[string]any{"reading": "さるもきからおちる"}},
		"meanings":    map[string]any{"japanese": "名人でも失敗することがある"},
		"explanation": map[string]any{"japanese": "木登りの上手な猿でも時には落ちることから"},
	}
}

func validSentence() domain.Document {
	return domain.Document{
		"sentence":          "漢字を勉強する",
		"words_in_sentence": []any{"漢字", "を", "勉強", "する"},
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	fields := make([]string, 0, len(vErr.Errors))
	for _, fe := range vErr.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

// ---------------------------------------------------------------------------
// Merge behavior
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_UnknownCollection(t *testing.T) {
	t.Parallel()

	_, err := ValidateAndPrepare("verbs", domain.Document{})
	assert.ErrorIs(t, err, domain.ErrUnknownCollection)
}

func TestValidateAndPrepare_FillsDefaults(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionWords, validWord())
	require.NoError(t, err)

	assert.Equal(t, 10.0, doc["kanken_level"])
	assert.Equal(t, []any{}, doc["synonyms"])
	assert.Equal(t, []any{}, doc["references"])
	assert.Equal(t, map[string]any{"japanese": "", "english": ""}, doc["nuance"])
}

func TestValidateAndPrepare_CallerValuesAreVerbatim(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["kanken_level"] = 2.5
	raw["synonyms"] = []any{"学習"}

	doc, err := ValidateAndPrepare(domain.CollectionWords, raw)
	require.NoError(t, err)

	assert.Equal(t, 2.5, doc["kanken_level"])
	assert.Equal(t, []any{"学習"}, doc["synonyms"])
}

func TestValidateAndPrepare_DropsFieldsOutsideSchema(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["not_a_schema_field"] = "whatever"

	doc, err := ValidateAndPrepare(domain.CollectionWords, raw)
	require.NoError(t, err)

	assert.NotContains(t, doc, "not_a_schema_field")
}

func TestValidateAndPrepare_DefaultsAreIsolatedPerCall(t *testing.T) {
	t.Parallel()

	first, err := ValidateAndPrepare(domain.CollectionWords, validWord())
	require.NoError(t, err)

	// Mutate a defaulted value on the first result.
	first["synonyms"] = append(first["synonyms"].([]any), "tainted")
	first["nuance"].(map[string]any)["japanese"] = "tainted"

	second, err := ValidateAndPrepare(domain.CollectionWords, validWord())
	require.NoError(t, err)

	assert.Equal(t, []any{}, second["synonyms"])
	assert.Equal(t, map[string]any{"japanese": "", "english": ""}, second["nuance"])
}

func TestValidateAndPrepare_Idempotent(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		collection domain.Collection
		raw        domain.Document
	}{
		{domain.CollectionRadicals, validRadical()},
		{domain.CollectionKanji, validKanji()},
		{domain.CollectionWords, validWord()},
		{domain.CollectionYojijukugo, validYojijukugo()},
		{domain.CollectionKotowaza, validKotowaza()},
		{domain.CollectionSentences, validSentence()},
	} {
		once, err := ValidateAndPrepare(tc.collection, tc.raw)
		require.NoError(t, err, "first pass for %s", tc.collection)

		twice, err := ValidateAndPrepare(tc.collection, once)
		require.NoError(t, err, "second pass for %s", tc.collection)
		assert.Equal(t, once, twice, "collection %s", tc.collection)
	}
}

func TestValidateAndPrepare_EmptyEntryFailsForEveryKind(t *testing.T) {
	t.Parallel()

	// The default-filled shape of an empty entry violates at least the
	// primary text field of every kind.
	primaries := map[domain.Collection]string{
		domain.CollectionRadicals:   "character",
		domain.CollectionKanji:      "character",
		domain.CollectionWords:      "word",
		domain.CollectionYojijukugo: "idiom",
		domain.CollectionKotowaza:   "proverb",
		domain.CollectionSentences:  "sentence",
	}
	for c, field := range primaries {
		_, err := ValidateAndPrepare(c, domain.Document{})
		require.Error(t, err, "collection %s", c)
		assert.Contains(t, fieldsOf(t, err), field, "collection %s", c)
	}
}

func TestValidateAndPrepare_EmptyEntryReportsAllViolations(t *testing.T) {
	t.Parallel()

	_, err := ValidateAndPrepare(domain.CollectionRadicals, domain.Document{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "character")
	assert.Contains(t, fields, "names")
	assert.Contains(t, fields, "meaning.japanese")
}

// ---------------------------------------------------------------------------
// Radicals
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Radical_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionRadicals, validRadical())
	require.NoError(t, err)
	assert.Equal(t, "氵", doc["character"])
	assert.Equal(t, 0, doc["stroke_count"])
}

func TestValidateAndPrepare_Radical_BlankCharacter(t *testing.T) {
	t.Parallel()

	raw := validRadical()
	raw["character"] = "   "

	_, err := ValidateAndPrepare(domain.CollectionRadicals, raw)
	assert.Contains(t, fieldsOf(t, err), "character")
}

// ---------------------------------------------------------------------------
// Kanji
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Kanji_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionKanji, validKanji())
	require.NoError(t, err)
	assert.Equal(t, 10.0, doc["kanken_level"])
}

func TestValidateAndPrepare_Kanji_OnlyOnReadings(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["readings"] = map[string]any{
		"on":  []any{map[string]any{"reading": "スイ", "tags": []any{}}},
		"kun": []any{},
	}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)
	require.NoError(t, err)
}

func TestValidateAndPrepare_Kanji_BothReadingListsEmpty(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["readings"] = map[string]any{"on": []any{}, "kun": []any{}}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)

	fields := fieldsOf(t, err)
	assert.Equal(t, []string{"readings"}, fields)
}

func TestValidateAndPrepare_Kanji_ReadingsNotArrays(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["readings"] = map[string]any{"on": "スイ"}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "readings.on")
	assert.Contains(t, fields, "readings.kun")
}

func TestValidateAndPrepare_Kanji_OnReadingMissingTags(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["readings"] = map[string]any{
		"on":  []any{map[string]any{"reading": "スイ"}},
		"kun": []any{},
	}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)
	assert.Contains(t, fieldsOf(t, err), "readings.on[0].tags")
}

func TestValidateAndPrepare_Kanji_KunReadingWrongTypes(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["readings"] = map[string]any{
		"on":  []any{},
		"kun": []any{map[string]any{"reading": 5, "tags": []any{}}},
	}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "readings.kun[0].reading")
	assert.Contains(t, fields, "readings.kun[0].okurigana")
}

func TestValidateAndPrepare_Kanji_MeaningMissingJapanese(t *testing.T) {
	t.Parallel()

	raw := validKanji()
	raw["meanings"] = []any{map[string]any{"english": "water"}}

	_, err := ValidateAndPrepare(domain.CollectionKanji, raw)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "meanings")
	assert.Contains(t, fields, "meanings[0].japanese")
}

// ---------------------------------------------------------------------------
// Words
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Word_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionWords, validWord())
	require.NoError(t, err)
	assert.Equal(t, "勉強", doc["word"])
}

func TestValidateAndPrepare_Word_EmptyReadings(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["readings"] = []any{}

	_, err := ValidateAndPrepare(domain.CollectionWords, raw)
	assert.Contains(t, fieldsOf(t, err), "readings")
}

func TestValidateAndPrepare_Word_BlankReadingElement(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["readings"] = []any{
		map[string]any{"reading": "べんきょう"},
		map[string]any{"reading": ""},
	}

	_, err := ValidateAndPrepare(domain.CollectionWords, raw)
	assert.Contains(t, fieldsOf(t, err), "readings[1].reading")
}

func TestValidateAndPrepare_Word_EnglishMeaningMustBeString(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["meanings"] = []any{map[string]any{"japanese": "学習すること", "english": 42}}

	_, err := ValidateAndPrepare(domain.CollectionWords, raw)
	assert.Contains(t, fieldsOf(t, err), "meanings[0].english")
}

func TestValidateAndPrepare_Word_EnglishMeaningOptional(t *testing.T) {
	t.Parallel()

	raw := validWord()
	raw["meanings"] = []any{map[string]any{"japanese": "学習すること"}}

	_, err := ValidateAndPrepare(domain.CollectionWords, raw)
	require.NoError(t, err)
}

// ---------------------------------------------------------------------------
// Yojijukugo
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Yojijukugo_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionYojijukugo, validYojijukugo())
	require.NoError(t, err)
	assert.Equal(t, "一石二鳥", doc["idiom"])
}

func TestValidateAndPrepare_Yojijukugo_ReferencesRequired(t *testing.T) {
	t.Parallel()

	raw := validYojijukugo()
	delete(raw, "references")

	_, err := ValidateAndPrepare(domain.CollectionYojijukugo, raw)
	assert.Contains(t, fieldsOf(t, err), "references")
}

func TestValidateAndPrepare_Yojijukugo_MissingExplanation(t *testing.T) {
	t.Parallel()

	raw := validYojijukugo()
	raw["explanation"] = map[string]any{"english": "only english"}

	_, err := ValidateAndPrepare(domain.CollectionYojijukugo, raw)
	assert.Contains(t, fieldsOf(t, err), "explanation.japanese")
}

// ---------------------------------------------------------------------------
// Kotowaza
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Kotowaza_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionKotowaza, validKotowaza())
	require.NoError(t, err)
	assert.Equal(t, "猿も木から落ちる", doc["proverb"])
}

func TestValidateAndPrepare_Kotowaza_ReferencesOptional(t *testing.T) {
	t.Parallel()

	raw := validKotowaza()
	// No references supplied at all.
	doc, err := ValidateAndPrepare(domain.CollectionKotowaza, raw)

	require.NoError(t, err)
	assert.Equal(t, []any{}, doc["references"])
}

func TestValidateAndPrepare_Kotowaza_MeaningsUsesPluralKey(t *testing.T) {
	t.Parallel()

	raw := validKotowaza()
	delete(raw, "meanings")

	_, err := ValidateAndPrepare(domain.CollectionKotowaza, raw)
	assert.Contains(t, fieldsOf(t, err), "meanings.japanese")
}

// ---------------------------------------------------------------------------
// Sentences
// ---------------------------------------------------------------------------

func TestValidateAndPrepare_Sentence_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ValidateAndPrepare(domain.CollectionSentences, validSentence())
	require.NoError(t, err)
	assert.Equal(t, "漢字を勉強する", doc["sentence"])
}

func TestValidateAndPrepare_Sentence_RequiresAtLeastTwoWords(t *testing.T) {
	t.Parallel()

	raw := validSentence()
	raw["words_in_sentence"] = []any{"漢字を勉強する"}

	_, err := ValidateAndPrepare(domain.CollectionSentences, raw)
	assert.Contains(t, fieldsOf(t, err), "words_in_sentence")
}

func TestValidateAndPrepare_Sentence_KanjiNotCoveredByWords(t *testing.T) {
	t.Parallel()

	raw := domain.Document{
		"sentence":          "漢字を勉強する",
		"words_in_sentence": []any{"漢字", "を", "する"},
	}

	_, err := ValidateAndPrepare(domain.CollectionSentences, raw)

	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Errors, 2)
	assert.Contains(t, vErr.Errors[0].Message, "勉")
	assert.Contains(t, vErr.Errors[1].Message, "強")
}

func TestValidateAndPrepare_Sentence_CoverageIsSubstringOverJoinedWords(t *testing.T) {
	t.Parallel()

	// 強 appears only in the joined concatenation of adjacent words, not
	// inside any single word. Containment is checked against the join, so
	// this passes.
	raw := domain.Document{
		"sentence":          "勉強する",
		"words_in_sentence": []any{"勉", "強する"},
	}

	_, err := ValidateAndPrepare(domain.CollectionSentences, raw)
	require.NoError(t, err)
}

func TestValidateAndPrepare_Sentence_KanaOnlySentenceNeedsNoCoverage(t *testing.T) {
	t.Parallel()

	raw := domain.Document{
		"sentence":          "これはペンです",
		"words_in_sentence": []any{"これ", "は", "ペン", "です"},
	}

	_, err := ValidateAndPrepare(domain.CollectionSentences, raw)
	require.NoError(t, err)
}
