package classify

import "practicehub/pkg/models"

var difficultyKeywords = []struct {
	level models.Level
	words []string
}{
	{models.LevelEasy, []string{
		"konnyu", "kezdo", "egyszeru", // hu
		"easy", "beginner", "light", // en
		"leicht", "einfach", "anfanger", // de
	}},
	{models.LevelMid, []string{
		"kozepes", "mersekelt",
		"medium", "intermediate", "moderate",
		"mittel", "maßig",
	}},
	{models.LevelHard, []string{
		"nehez", "halado", "intenziv",
		"hard", "difficult", "advanced", "intense",
		"schwer", "schwierig", "anspruchsvoll",
	}},
}

// ClassifyDifficulty maps free text to a difficulty level. Buckets are
// checked easy, mid, hard and the first containing a keyword wins.
func ClassifyDifficulty(text string) models.Level {
	t := Fold(text)
	if t == "" {
		return models.LevelUnknown
	}
	for _, bucket := range difficultyKeywords {
		if containsAny(t, bucket.words) {
			return bucket.level
		}
	}
	return models.LevelUnknown
}
