// Package scoring computes composite recommendation scores. Each candidate
// receives eight independently clamped sub-scores (genre, rating, content
// similarity, cast/crew, popularity, tone, feedback, keyword overlap) that
// combine into a total on a 0-120 scale, with a human-readable justification.
// Any sub-score whose inputs are unavailable degrades to zero rather than
// failing the candidate.
package scoring
