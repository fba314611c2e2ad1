package value

import "strings"

// escapeString re-escapes a string constant's contents for Display, turning
// control characters and the characters that would otherwise terminate the
// literal back into their source-level escape sequences.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(escapeRuneIn(r, '"'))
	}

	return b.String()
}

// escapeRune re-escapes a single u8char constant's contents for Display.
func escapeRune(r rune) string {
	return escapeRuneIn(r, '\'')
}

func escapeRuneIn(r rune, quote rune) string {
	switch r {
	case '\\':
		return `\\`
	case quote:
		return `\` + string(quote)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case 0:
		return `\0`
	default:
		return string(r)
	}
}
