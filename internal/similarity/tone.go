package similarity

import "strings"

// Tone is a coarse classification of a title's emotional register.
type Tone string

const (
	ToneSerious Tone = "serious"
	ToneLight   Tone = "light"
	ToneAction  Tone = "action"
	ToneMystery Tone = "mystery"
	ToneNeutral Tone = "neutral"
)

// Keyword sets are checked in declaration order; the first set with a match
// decides the tone.
var toneKeywords = []struct {
	tone  Tone
	words []string
}{
	{ToneSerious, []string{
		"dark", "gritty", "tragedy", "tragic", "war", "death", "dystopian",
		"brutal", "haunting", "bleak", "drama", "loss", "grief",
	}},
	{ToneLight, []string{
		"comedy", "funny", "hilarious", "heartwarming", "charming",
		"romantic", "whimsical", "family", "feel-good", "adventure",
	}},
	{ToneAction, []string{
		"action", "explosive", "thriller", "chase", "battle", "fight",
		"combat", "heist", "mission", "assassin",
	}},
	{ToneMystery, []string{
		"mystery", "detective", "investigation", "secret", "conspiracy",
		"puzzle", "whodunit", "noir", "suspense",
	}},
}

// ClassifyTone assigns a tone by first keyword match against the fixed
// keyword sets, in priority order serious, light, action, mystery. Text with
// no match is neutral.
func ClassifyTone(text string) Tone {
	lowered := strings.ToLower(text)
	for _, set := range toneKeywords {
		for _, word := range set.words {
			if strings.Contains(lowered, word) {
				return set.tone
			}
		}
	}
	return ToneNeutral
}

// ToneScore maps a seed/candidate tone pair to its scoring contribution:
// matching serious, action, or mystery tones score full marks, the
// serious/mystery and action/mystery cross-pairs score 15, a shared light
// tone scores 10, and everything else 0.
func ToneScore(seed, candidate Tone) float64 {
	if seed == ToneNeutral || candidate == ToneNeutral {
		return 0
	}
	if seed == candidate {
		if seed == ToneLight {
			return 10
		}
		return 20
	}
	if crossPair(seed, candidate, ToneSerious, ToneMystery) {
		return 15
	}
	if crossPair(seed, candidate, ToneAction, ToneMystery) {
		return 15
	}
	return 0
}

func crossPair(a, b, x, y Tone) bool {
	return (a == x && b == y) || (a == y && b == x)
}
