// Package format renders raw backend values as MarkdownV2-safe display text.
package format

import (
	"math"
	"strconv"
	"strings"
)

// markdownV2Special is the set of characters Telegram requires to be
// backslash-escaped in MarkdownV2 text.
const markdownV2Special = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdownV2 backslash-escapes every MarkdownV2 special character in s.
// It is applied to dynamic values only; static template punctuation is
// written pre-escaped in the templates themselves.
func EscapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		if r < 128 && strings.ContainsRune(markdownV2Special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Currency renders an amount with the panel's shorthand suffixes:
// thousands as "k", millions as "j" (juta), billions as "m" (miliar).
// The scaled value keeps one decimal place; a trailing ".0" is dropped.
//
//	Currency(500)        == "500"
//	Currency(1500)       == "1.5k"
//	Currency(2000000)    == "2j"
//	Currency(1234000000) == "1.2m"
func Currency(v int64) string {
	switch {
	case v >= 1_000_000_000:
		return scale(v, 1_000_000_000) + "m"
	case v >= 1_000_000:
		return scale(v, 1_000_000) + "j"
	case v >= 1_000:
		return scale(v, 1_000) + "k"
	default:
		return strconv.FormatInt(v, 10)
	}
}

func scale(v, unit int64) string {
	scaled := math.Round(float64(v)/float64(unit)*10) / 10
	s := strconv.FormatFloat(scaled, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
