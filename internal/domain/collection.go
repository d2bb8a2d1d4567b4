package domain

// Collection identifies one of the six document kinds stored by the
// application. The set is closed: adding a kind means adding a constant
// here plus a schema and a validator.
type Collection string

const (
	CollectionRadicals   Collection = "radicals"
	CollectionKanji      Collection = "kanji"
	CollectionWords      Collection = "words"
	CollectionYojijukugo Collection = "yojijukugo"
	CollectionKotowaza   Collection = "kotowaza"
	CollectionSentences  Collection = "sentences"
)

// Collections returns every known collection, in a stable order.
func Collections() []Collection {
	return []Collection{
		CollectionRadicals,
		CollectionKanji,
		CollectionWords,
		CollectionYojijukugo,
		CollectionKotowaza,
		CollectionSentences,
	}
}

// IsValid reports whether c names a known collection.
func (c Collection) IsValid() bool {
	switch c {
	case CollectionRadicals, CollectionKanji, CollectionWords,
		CollectionYojijukugo, CollectionKotowaza, CollectionSentences:
		return true
	}
	return false
}

func (c Collection) String() string { return string(c) }

// indexFieldMap maps each collection to the single field used for
// index-style lookups. Collections absent from the map (sentences) do
// not support index lookups and must use filter search instead.
var indexFieldMap = map[Collection]string{
	CollectionRadicals:   "character",
	CollectionKanji:      "character",
	CollectionWords:      "word",
	CollectionYojijukugo: "idiom",
	CollectionKotowaza:   "proverb",
}

// IndexField returns the indexed lookup field for c, if it has one.
func (c Collection) IndexField() (string, bool) {
	f, ok := indexFieldMap[c]
	return f, ok
}

// SupportsFuzzySearch reports whether c is one of the free-text-heavy
// collections backed by a text-relevance search index.
func (c Collection) SupportsFuzzySearch() bool {
	switch c {
	case CollectionWords, CollectionYojijukugo, CollectionKotowaza:
		return true
	}
	return false
}
