package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{999, "999"},
		{1000, "1k"},
		{1500, "1.5k"},
		{999999, "1000k"},
		{1000000, "1j"},
		{1500000, "1.5j"},
		{2000000, "2j"},
		{1000000000, "1m"},
		{1234000000, "1.2m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%d)", tt.in)
	}
}

func TestEscapeMarkdownV2_Specials(t *testing.T) {
	assert.Equal(t, `a\_b\*c\[d\]`, EscapeMarkdownV2("a_b*c[d]"))
	assert.Equal(t, `\(\)\~\>\#\+\-\=\|\{\}\.\!`, EscapeMarkdownV2("()~>#+-=|{}.!"))
	assert.Equal(t, "\\`code\\`", EscapeMarkdownV2("`code`"))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
}

func TestEscapeMarkdownV2_RoundTrip(t *testing.T) {
	// Escaping then stripping the inserted backslashes must reproduce the
	// input over the whole printable ASCII range.
	var b strings.Builder
	for r := rune(0x20); r <= 0x7e; r++ {
		if r == '\\' {
			// a literal backslash is indistinguishable from an inserted one
			continue
		}
		b.WriteRune(r)
	}
	in := b.String()

	escaped := EscapeMarkdownV2(in)
	assert.Equal(t, in, strings.ReplaceAll(escaped, `\`, ""))
}
