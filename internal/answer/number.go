package answer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// units maps pt-BR number words (already normalized, so no accents) to their
// value. Feminine and archaic forms ("duas", "catorze", "dezasseis") are
// included because speech recognizers emit them freely.
var units = map[string]float64{
	"zero": 0, "um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3, "quatro": 4,
	"cinco": 5, "seis": 6, "sete": 7, "oito": 8, "nove": 9, "dez": 10,
	"onze": 11, "doze": 12, "treze": 13, "quatorze": 14, "catorze": 14,
	"quinze": 15, "dezesseis": 16, "dezasseis": 16, "dezessete": 17,
	"dezoito": 18, "dezenove": 19, "dezanove": 19, "vinte": 20,
	"trinta": 30, "quarenta": 40, "cinquenta": 50, "sessenta": 60,
	"setenta": 70, "oitenta": 80, "noventa": 90,
	"cem": 100, "cento": 100, "duzentos": 200, "duzentas": 200,
	"trezentos": 300, "trezentas": 300, "quatrocentos": 400, "quatrocentas": 400,
	"quinhentos": 500, "quinhentas": 500, "seiscentos": 600, "seiscentas": 600,
	"setecentos": 700, "setecentas": 700, "oitocentos": 800, "oitocentas": 800,
	"novecentos": 900, "novecentas": 900, "mil": 1000,
}

var (
	connectiveRe = regexp.MustCompile(`\b(e|de)\b`)
	decimalRe    = regexp.MustCompile(`\b(ponto|virgula)\b`)
	minusRe      = regexp.MustCompile(`\bmenos\b`)

	numericOnlyRe  = regexp.MustCompile(`^-?[\d.,]+$`)
	decimalCommaRe = regexp.MustCompile(`(\d),(\d)`)
	floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	intPrefixRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// WordsToNumber converts a spoken pt-BR number to a float. It handles digit
// strings ("12,5"), word sequences ("vinte e cinco"), decimal markers
// ("ponto", "virgula") and a leading "menos" for negatives. The second return
// is false when the text is not a number.
func WordsToNumber(text string) (float64, bool) {
	s := normalizeNumeric(text)
	s = connectiveRe.ReplaceAllString(s, "")
	s = decimalRe.ReplaceAllString(s, ".")
	s = minusRe.ReplaceAllString(s, "-")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	if numericOnlyRe.MatchString(s) {
		if v, err := strconv.ParseFloat(digitsOnly(s), 64); err == nil {
			return v, true
		}
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	}

	intPart, decPart := s, ""
	if i := strings.Index(s, "."); i != -1 {
		intPart = strings.TrimSpace(s[:i])
		decPart = strings.TrimSpace(s[i+1:])
	}

	intVal, ok := parseWordSequence(strings.Fields(intPart))
	if !ok {
		return 0, false
	}

	if decPart == "" {
		if negative {
			return -intVal, true
		}
		return intVal, true
	}

	// The decimal part scales by its digit count: "ponto cinco" is .5,
	// "ponto vinte cinco" is .25.
	result := intVal
	if decVal, ok := parseWordSequence(strings.Fields(decPart)); ok {
		digits := len(strconv.FormatFloat(decVal, 'f', -1, 64))
		result = intVal + decVal/math.Pow(10, float64(digits))
	}
	if negative {
		return -result, true
	}
	return result, true
}

// normalizeNumeric is [Normalize] with decimal commas preserved: a comma
// between digits is the pt-BR decimal separator and is rewritten to a dot
// before normalization turns commas into spaces.
func normalizeNumeric(text string) string {
	return Normalize(decimalCommaRe.ReplaceAllString(text, "$1.$2"))
}

// digitsOnly keeps digits, the sign and the last decimal separator, so a
// thousands-grouped "1.234.5" becomes "1234.5".
func digitsOnly(s string) string {
	var b strings.Builder
	lastDot := strings.LastIndexByte(s, '.')
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == '.' && i == lastDot:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseWordSequence folds a sequence of number words additively, with
// hundreds acting multiplicatively and "mil" closing a thousand group:
// ["dois", "mil", "trezentos", "quarenta", "cinco"] yields 2345. Bare digit
// tokens mixed into the sequence ("vinte 5") are accepted.
func parseWordSequence(words []string) (float64, bool) {
	var total, current float64
	for _, w := range words {
		v, ok := units[w]
		if !ok {
			n, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return 0, false
			}
			current += n
			continue
		}
		switch {
		case v == 1000:
			if current == 0 {
				current = 1
			}
			total += current * 1000
			current = 0
		case v >= 100:
			if current == 0 {
				current = 1
			}
			current *= v
		default:
			current += v
		}
	}
	return total + current, true
}

// parseFloatPrefix parses the leading decimal number of s, ignoring any
// trailing words ("12.5 metros" yields 12.5).
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefixRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(m, "+"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseIntPrefix parses the leading integer of s.
func parseIntPrefix(s string) (int, bool) {
	m := intPrefixRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimPrefix(m, "+"))
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a float the way a person would write it: no trailing
// zeros, no exponent for ordinary magnitudes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
