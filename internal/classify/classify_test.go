package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicehub/pkg/models"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "konnyu szint", Fold("  Könnyű  Szint "))
	assert.Equal(t, "nehezseg", Fold("NEHÉZSÉG"))
	assert.Equal(t, "idotartam", Fold("Időtartam"))
	assert.Equal(t, "", Fold(""))
}

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want models.Level
	}{
		{"Könnyű", models.LevelEasy},
		{"konnyu", models.LevelEasy},
		{"Kezdő", models.LevelEasy},
		{"Beginner", models.LevelEasy},
		{"Mittel", models.LevelMid},
		{"Közepes", models.LevelMid},
		{"intermediate", models.LevelMid},
		{"Nehéz", models.LevelHard},
		{"Hard", models.LevelHard},
		{"Haladó", models.LevelHard},
		{"schwer", models.LevelHard},
		{"", models.LevelUnknown},
		{"???", models.LevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDifficulty(tt.in))
		})
	}
}

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"20 perc", 20, true},
		{"5p", 5, true},
		{"10 min", 10, true},
		{"kb. 12 Perc", 12, true},
		{"15MIN", 15, true},
		{"hosszú", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := ParseDurationMinutes(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestIsShort(t *testing.T) {
	n, ok := ParseDurationMinutes("20 perc")
	require.True(t, ok)
	assert.False(t, IsShort(n))

	n, ok = ParseDurationMinutes("5p")
	require.True(t, ok)
	assert.True(t, IsShort(n))

	assert.True(t, IsShort(ShortMaxMinutes))
	assert.False(t, IsShort(ShortMaxMinutes+1))
}

func TestResolveCardIconBeatsLabel(t *testing.T) {
	cards := []models.MetadataCard{
		{Label: "Időtartam", Value: "5 perc"},
		{Icon: "clock", Label: "Hossz", Value: "20 perc"},
	}
	assert.Equal(t, 1, ResolveCard(cards, SlotClock))
}

func TestResolveCardLabelBeatsKeyword(t *testing.T) {
	cards := []models.MetadataCard{
		{Label: "Teljes időtartam", Value: "30 perc"},
		{Label: "Időtartam", Value: "5 perc"},
	}
	assert.Equal(t, 1, ResolveCard(cards, SlotClock))
}

func TestResolveCardKeywordFallback(t *testing.T) {
	cards := []models.MetadataCard{
		{Label: "Ismétlés", Value: "10x"},
		{Label: "Gyakorlat szintje", Value: "Közepes"},
	}
	assert.Equal(t, 1, ResolveCard(cards, SlotDifficult))
	assert.Equal(t, -1, ResolveCard(cards, SlotClock))
	assert.Equal(t, -1, ResolveCard(nil, SlotType))
	assert.Equal(t, -1, ResolveCard(cards, CardSlot("unknown")))
}

func TestResolveIconCards(t *testing.T) {
	cards := []models.MetadataCard{
		{Icon: "clock", Label: "Időtartam", Value: "5 perc"},
		{Label: "Eszköz", Value: "Matrac"},
		{Icon: "difficult", Label: "Nehézség", Value: "Könnyű"},
		{Label: "Típus", Value: "Nyújtás"},
	}
	ic, used := ResolveIconCards(cards)
	require.NotNil(t, ic.Clock)
	require.NotNil(t, ic.Difficult)
	require.NotNil(t, ic.Type)
	assert.Equal(t, "5 perc", ic.Clock.Value)
	assert.Equal(t, "Könnyű", ic.Difficult.Value)
	assert.Equal(t, "Nyújtás", ic.Type.Value)
	assert.Equal(t, map[int]bool{0: true, 2: true, 3: true}, used)
}

func TestVideoDetection(t *testing.T) {
	assert.True(t, IsVideoMedia(models.Media{URL: "/x", Mime: "video/mp4"}))
	assert.True(t, IsVideoMedia(models.Media{URL: "/clip.MOV"}))
	assert.True(t, IsVideoMedia(models.Media{URL: "/clip.webm?v=2"}))
	assert.False(t, IsVideoMedia(models.Media{URL: "/video-guide.jpg"}))

	assert.True(t, IsImageMedia(models.Media{URL: "/a.webp"}))
	assert.True(t, IsImageMedia(models.Media{URL: "/upload/123", Mime: "image/png"}))
	assert.False(t, IsImageMedia(models.Media{URL: "/a.pdf"}))
	assert.False(t, IsImageMedia(models.Media{URL: "/a.jpg", Mime: "video/mp4"}))
	assert.False(t, IsImageMedia(models.Media{}))

	assert.True(t, AnyVideo([]models.Media{{URL: "/a.jpg"}, {URL: "/b.mp4"}}))
	assert.False(t, AnyVideo([]models.Media{{URL: "/a.jpg"}}))
	assert.False(t, AnyVideo(nil))
}

func TestResolveIconCardsOneSlotPerCard(t *testing.T) {
	cards := []models.MetadataCard{
		{Label: "Időtartam típusa", Value: "10 perc"},
	}
	assert.Equal(t, 0, ResolveCard(cards, SlotType))

	ic, used := ResolveIconCards(cards)
	require.NotNil(t, ic.Clock)
	assert.Equal(t, "10 perc", ic.Clock.Value)
	assert.Nil(t, ic.Type)
	assert.Equal(t, map[int]bool{0: true}, used)

	cards = append(cards, models.MetadataCard{Label: "Jelleg", Value: "Nyújtás"})
	ic, _ = ResolveIconCards(cards)
	require.NotNil(t, ic.Type)
	assert.Equal(t, "Nyújtás", ic.Type.Value)
}
