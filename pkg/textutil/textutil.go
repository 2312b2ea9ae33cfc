package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	ExcerptLength = 300
	excerptSuffix = "..."
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`[-\s]+`)

	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// Slugify приводит строку к виду, пригодному для URL: латиница, цифры и дефисы
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	ascii = nonSlugChars.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = strings.TrimSpace(ascii)
	ascii = slugSpaces.ReplaceAllString(ascii, "-")
	return strings.Trim(ascii, "-_")
}

// StripTags возвращает текст без HTML-разметки
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Excerpt строит краткое описание поста из его содержимого
func Excerpt(content string) string {
	text := StripTags(content)
	r := []rune(text)
	if len(r) <= ExcerptLength {
		return text
	}
	return string(r[:ExcerptLength]) + excerptSuffix
}

// Sanitize оставляет в пользовательском HTML только безопасную разметку
func Sanitize(s string) string {
	return ugcPolicy.Sanitize(s)
}
