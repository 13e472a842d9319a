package similarity

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches alphabetic runs; digits and punctuation split tokens.
var tokenPattern = regexp.MustCompile(`[a-z]+`)

var stopwords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "been": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "does": {},
	"down": {}, "during": {}, "each": {}, "from": {}, "have": {},
	"having": {}, "into": {}, "itself": {}, "just": {}, "more": {},
	"most": {}, "much": {}, "must": {}, "only": {}, "other": {},
	"over": {}, "same": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"under": {}, "until": {}, "very": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

// Tokenize splits text into lowercase alphabetic tokens longer than three
// characters, excluding stopwords. Token order follows first occurrence.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenPattern.FindAllString(lowered, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if len(token) <= 3 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TopTokens returns the n most frequent tokens of text, most frequent first.
// Ties are broken by first occurrence in the text.
func TopTokens(text string, n int) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 || n <= 0 {
		return nil
	}
	counts := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for idx, token := range tokens {
		if _, ok := counts[token]; !ok {
			firstSeen[token] = idx
			order = append(order, token)
		}
		counts[token]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func tokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// Jaccard returns the token-set Jaccard overlap of two texts in [0, 1].
func Jaccard(textA, textB string) float64 {
	setA := tokenSet(textA)
	setB := tokenSet(textB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	var common int
	for token := range setA {
		if _, ok := setB[token]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	return float64(common) / float64(union)
}

// Lexical computes a deterministic similarity in [0, 1] between two texts
// without any external service: Jaccard overlap of token sets, a bonus for
// shared rare (long) words, and a small bonus for tagline overlap.
func Lexical(textA, taglineA, textB, taglineB string) float64 {
	setA := tokenSet(textA)
	setB := tokenSet(textB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var common, rare int
	for token := range setA {
		if _, ok := setB[token]; ok {
			common++
			if len(token) >= 8 {
				rare++
			}
		}
	}
	union := len(setA) + len(setB) - common
	score := float64(common) / float64(union)

	// Shared long words are a stronger topical signal than short ones.
	rareBonus := float64(rare) * 0.02
	if rareBonus > 0.1 {
		rareBonus = 0.1
	}
	score += rareBonus

	if taglineA != "" && taglineB != "" {
		tagA := tokenSet(taglineA)
		tagB := tokenSet(taglineB)
		if len(tagA) > 0 && len(tagB) > 0 {
			var tagCommon int
			for token := range tagA {
				if _, ok := tagB[token]; ok {
					tagCommon++
				}
			}
			tagUnion := len(tagA) + len(tagB) - tagCommon
			score += 0.05 * float64(tagCommon) / float64(tagUnion)
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
