package answer

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// jaroWinklerThreshold is the minimum similarity for the last-resort fuzzy
// stage of [MatchOption]. Below it, near-misses are rejected so a garbled
// transcript falls through to a retry instead of silently picking a wrong
// option.
const jaroWinklerThreshold = 0.85

// MatchOption resolves a spoken transcript against a list of allowed option
// values. Matching runs in stages, strictest first:
//
//  1. exact match on normalized text
//  2. substring containment either way
//  3. shared-token count, only tokens longer than two runes
//  4. best Jaro-Winkler similarity of at least 0.85
//
// The returned string is always one of options verbatim. ok is false when no
// stage produced a match.
func MatchOption(input string, options []string) (string, bool) {
	normInput := Normalize(input)
	if normInput == "" {
		return "", false
	}

	for _, opt := range options {
		if Normalize(opt) == normInput {
			return opt, true
		}
	}

	for _, opt := range options {
		normOpt := Normalize(opt)
		if strings.Contains(normOpt, normInput) || strings.Contains(normInput, normOpt) {
			return opt, true
		}
	}

	inputWords := significantWords(normInput)
	var bestOpt string
	bestScore := 0
	for _, opt := range options {
		optWords := significantWords(Normalize(opt))
		score := 0
		for _, iw := range inputWords {
			for _, ow := range optWords {
				if strings.Contains(ow, iw) || strings.Contains(iw, ow) {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestOpt = opt
		}
	}
	if bestScore > 0 {
		return bestOpt, true
	}

	var bestJW float64
	for _, opt := range options {
		if s := matchr.JaroWinkler(normInput, Normalize(opt), false); s > bestJW {
			bestJW = s
			bestOpt = opt
		}
	}
	if bestJW >= jaroWinklerThreshold {
		return bestOpt, true
	}
	return "", false
}

// significantWords drops short filler tokens ("de", "do", "ou") that would
// inflate overlap scores.
func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > 2 {
			out = append(out, w)
		}
	}
	return out
}
