package answer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var months = map[string]int{
	"janeiro": 1, "fevereiro": 2, "marco": 3, "abril": 4, "maio": 5,
	"junho": 6, "julho": 7, "agosto": 8, "setembro": 9, "outubro": 10,
	"novembro": 11, "dezembro": 12,
}

var numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`)

// ParseDate extracts a DD/MM/YYYY date from a transcript. Digit dates like
// "15/03/2024" or "15-3-2024" win; otherwise a spoken date ("quinze de março
// de dois mil e vinte e quatro") is assembled around the month name. When
// neither form is present the trimmed input is returned unchanged so a typed
// or partially spoken date is never lost.
func ParseDate(text string) string {
	norm := Normalize(text)

	if m := numericDateRe.FindStringSubmatch(norm); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d/%02d/%s", d, mo, m[3])
	}

	words := strings.Fields(norm)
	for i, w := range words {
		month, ok := months[w]
		if !ok {
			continue
		}

		// Day: the words before the month name, up to a "de" boundary. The
		// connective right before the month ("quinze de março") is skipped.
		j := i - 1
		if j >= 0 && words[j] == "de" {
			j--
		}
		var dayWords []string
		for ; j >= 0 && words[j] != "de"; j-- {
			dayWords = append([]string{words[j]}, dayWords...)
		}
		day, dayOK := 0.0, false
		if len(dayWords) > 0 {
			day, dayOK = WordsToNumber(strings.Join(dayWords, " "))
		}

		// Year: everything after the month name, connectives removed.
		var yearWords []string
		for _, w := range words[i+1:] {
			if w != "de" {
				yearWords = append(yearWords, w)
			}
		}
		year, yearOK := WordsToNumber(strings.Join(yearWords, " "))

		if dayOK && yearOK {
			return fmt.Sprintf("%02d/%02d/%d", int(day), month, int(year))
		}
		break
	}

	return strings.TrimSpace(text)
}
