package furigana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKanji(t *testing.T) {
	t.Parallel()

	assert.True(t, IsKanji('漢'))
	assert.True(t, IsKanji('一'))

	assert.False(t, IsKanji('あ'))
	assert.False(t, IsKanji('ア'))
	assert.False(t, IsKanji('a'))
	assert.False(t, IsKanji('。'))
}

func TestExtractKanji(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []rune("漢字勉強"), ExtractKanji("漢字を勉強する"))
	assert.Empty(t, ExtractKanji("これはペンです"))
	// Duplicates are kept in order of appearance.
	assert.Equal(t, []rune("人人"), ExtractKanji("人と人"))
}

func TestParse_SplitsKanjiIntoSingleCharSegments(t *testing.T) {
	t.Parallel()

	segments := Parse("漢字を勉強する")

	require.Len(t, segments, 6)
	assert.Equal(t, Segment{Text: "漢", IsKanji: true}, segments[0])
	assert.Equal(t, Segment{Text: "字", IsKanji: true}, segments[1])
	assert.Equal(t, Segment{Text: "を"}, segments[2])
	assert.Equal(t, Segment{Text: "勉", IsKanji: true}, segments[3])
	assert.Equal(t, Segment{Text: "強", IsKanji: true}, segments[4])
	assert.Equal(t, Segment{Text: "する"}, segments[5])
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Parse(""))
}

func TestParse_KanaOnly(t *testing.T) {
	t.Parallel()

	segments := Parse("これはペンです")

	require.Len(t, segments, 1)
	assert.Equal(t, Segment{Text: "これはペンです"}, segments[0])
}

func TestBuild_BracketNotation(t *testing.T) {
	t.Parallel()

	got := Build([]Segment{
		{Text: "漢", Furigana: "かん", IsKanji: true},
		{Text: "字", Furigana: "じ", IsKanji: true},
		{Text: "を"},
	})

	assert.Equal(t, "[漢](かん)[字](じ)を", got)
}

func TestBuild_KanjiWithoutReadingIsBare(t *testing.T) {
	t.Parallel()

	got := Build([]Segment{
		{Text: "漢", IsKanji: true},
		{Text: "字", Furigana: "じ", IsKanji: true},
	})

	assert.Equal(t, "漢[字](じ)", got)
}

func TestParseBuild_RoundTripWithoutReadings(t *testing.T) {
	t.Parallel()

	text := "漢字を勉強する"
	assert.Equal(t, text, Build(Parse(text)))
}
