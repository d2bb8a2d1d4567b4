// Package schema holds the static per-collection field definitions used
// to default-fill raw entries before validation.
package schema

import (
	"fmt"

	"github.com/picotan/picotan-backend/internal/domain"
)

// DefaultKankenLevel is the easiest grade; new entries start there
// unless the caller says otherwise.
const DefaultKankenLevel = 10.0

// Field describes one schema field: whether the structural validators
// require it, and a factory producing a fresh default value. Defaults
// are factories rather than shared values so one request's mutation can
// never leak into another's.
type Field struct {
	Required bool
	Default  func() any
}

// Schema maps field names to their definitions for one collection.
type Schema map[string]Field

// Get returns the schema for a collection.
func Get(c domain.Collection) (Schema, error) {
	s, ok := registry[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	return s, nil
}

func emptyString() any  { return "" }
func zeroInt() any      { return 0 }
func emptyList() any    { return []any{} }
func kankenDefault() any { return DefaultKankenLevel }

// bilingual returns a fresh {japanese, english} pair.
func bilingual() any {
	return map[string]any{"japanese": "", "english": ""}
}

var registry = map[domain.Collection]Schema{
	domain.CollectionRadicals: {
		"character":    {Required: true, Default: emptyString},
		"stroke_count": {Required: true, Default: zeroInt},
		"names":        {Required: true, Default: emptyList},
		"alternates":   {Required: false, Default: emptyList},
		"meaning":      {Required: true, Default: bilingual},
	},
	domain.CollectionKanji: {
		"character":       {Required: true, Default: emptyString},
		"alternate_forms": {Required: false, Default: emptyList},
		"radical":         {Required: true, Default: emptyString},
		"stroke_count":    {Required: true, Default: zeroInt},
		"readings": {Required: true, Default: func() any {
			return map[string]any{"on": []any{}, "kun": []any{}}
		}},
		"meanings":     {Required: true, Default: emptyList},
		"kanken_level": {Required: true, Default: kankenDefault},
		"categories":   {Required: true, Default: emptyList},
		"references":   {Required: true, Default: emptyList},
	},
	domain.CollectionWords: {
		"word":          {Required: true, Default: emptyString},
		"readings":      {Required: true, Default: emptyList},
		"meanings":      {Required: true, Default: emptyList},
		"synonyms":      {Required: false, Default: emptyList},
		"antonyms":      {Required: false, Default: emptyList},
		"collocations":  {Required: false, Default: emptyList},
		"related_words": {Required: false, Default: emptyList},
		"other_forms":   {Required: false, Default: emptyList},
		"nuance":        {Required: false, Default: bilingual},
		"kanken_level":  {Required: true, Default: kankenDefault},
		"references":    {Required: true, Default: emptyList},
	},
	domain.CollectionYojijukugo: {
		"idiom":        {Required: true, Default: emptyString},
		"readings":     {Required: true, Default: emptyList},
		"meaning":      {Required: true, Default: bilingual},
		"explanation":  {Required: true, Default: bilingual},
		"source":       {Required: false, Default: emptyString},
		"synonyms":     {Required: false, Default: emptyList},
		"antonyms":     {Required: false, Default: emptyList},
		"tags":         {Required: false, Default: emptyList},
		"kanken_level": {Required: true, Default: kankenDefault},
		"references":   {Required: true, Default: emptyList},
	},
	domain.CollectionKotowaza: {
		"proverb": {Required: true, Default: emptyString},
		"readings": {Required: true, Default: emptyList},
		// Singular struct, unlike words/kanji: this collection keeps one
		// combined meaning object.
		"meanings":        {Required: true, Default: bilingual},
		"explanation":     {Required: true, Default: bilingual},
		"related_phrases": {Required: false, Default: emptyList},
		"kanken_level":    {Required: true, Default: kankenDefault},
		"references":      {Required: false, Default: emptyList},
	},
	domain.CollectionSentences: {
		"sentence":          {Required: true, Default: emptyString},
		"words_in_sentence": {Required: true, Default: emptyList},
		"explanation":       {Required: false, Default: emptyString},
		"english":           {Required: false, Default: emptyString},
		"kanken_level":      {Required: true, Default: kankenDefault},
		"references":        {Required: false, Default: emptyList},
	},
}
