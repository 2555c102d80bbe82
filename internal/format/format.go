// Package format contains presentation helpers used when rendering dashboard
// data in the terminal: casing, slugs, dates and currency amounts.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var slugStrip = regexp.MustCompile(`[^\w-]+`)

// UcFirst upper-cases the first character of text.
func UcFirst(text string) string {
	if text == "" {
		return ""
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// UcWords upper-cases the first character of every space-separated word.
func UcWords(text string) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = UcFirst(w)
	}
	return strings.Join(words, " ")
}

// ToSlug lower-cases text, replaces spaces with dashes and strips everything
// that is not a word character or dash.
func ToSlug(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ReplaceAll(strings.ToLower(text), " ", "-")
	return slugStrip.ReplaceAllString(s, "")
}

// ConvertToTitle turns a dashed slug into a display title. For dashed input
// the first segment (a role/type prefix) is dropped: "bumdes-desa-wisata"
// becomes "Desa Wisata". Plain input is title-cased as-is.
func ConvertToTitle(text string) string {
	if text == "" {
		return ""
	}
	if !strings.Contains(text, "-") {
		return UcWords(text)
	}
	parts := strings.Split(text, "-")[1:]
	for i, p := range parts {
		parts[i] = UcWords(p)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Pluralize returns singular when count is one, plural otherwise.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders a date the way the dashboard does: "2 Januari 2006".
// x/text ships no date localization, so month names are tabled here.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// FormatCurrency renders an amount as Indonesian Rupiah, e.g. "Rp 1.500.000".
func FormatCurrency(amount float64) string {
	p := message.NewPrinter(language.Indonesian)
	return p.Sprint(currency.Symbol(currency.IDR.Amount(amount)))
}
