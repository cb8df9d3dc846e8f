package disinfecturl

import (
	"strings"
	"unicode/utf8"
)

// namedEntities is the small reference table understood by the first
// decode pass. HTML5 names such as &Tab; are deliberately absent.
var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
}

// maxEntityName is the length of the longest key in namedEntities.
const maxEntityName = 4

// DecodeEntities replaces character references in s with the characters
// they stand for.
//
// The first pass handles the named references in a small table and
// numeric references terminated by ';'. The second pass handles
// unterminated numeric references: "&#" followed by a run of word
// characters that is not followed by ';'. Only the decimal digits at
// the start of the run count, so "&#x6A" decodes to U+0000, not 'j'.
func DecodeEntities(s string) string {
	return decodeBareNumeric(decodeReferences(s))
}

func decodeReferences(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			continue
		}
		repl, n := referenceAt(s[i+1:])
		if n == 0 {
			continue
		}
		b.WriteString(s[last:i])
		b.WriteString(repl)
		i += n
		last = i + 1
	}
	b.WriteString(s[last:])
	return b.String()
}

// referenceAt decodes the reference that follows an '&'. It returns the
// replacement and the number of bytes consumed, including the ';'. n is
// zero when s does not start with a reference the first pass decodes.
func referenceAt(s string) (repl string, n int) {
	if strings.HasPrefix(s, "#") {
		return numericReferenceAt(s)
	}
	end := strings.IndexByte(s[:min(len(s), maxEntityName+1)], ';')
	if end < 1 {
		return "", 0
	}
	if v, ok := namedEntities[s[:end]]; ok {
		return v, end + 1
	}
	return "", 0
}

func numericReferenceAt(s string) (string, int) {
	i, base := 1, 10
	if len(s) > 1 && (s[1] == 'x' || s[1] == 'X') {
		i, base = 2, 16
	}
	start := i
	var cp rune
	valid := true
	for ; i < len(s); i++ {
		d := digitValue(s[i], base)
		if d < 0 {
			break
		}
		if valid {
			cp = cp*rune(base) + rune(d)
			if cp > utf8.MaxRune {
				valid = false
			}
		}
	}
	if i == start || i >= len(s) || s[i] != ';' {
		return "", 0
	}
	if !valid || !utf8.ValidRune(cp) {
		// Left as literal text.
		return "", 0
	}
	return string(cp), i + 1
}

func digitValue(c byte, base int) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case base == 16 && 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case base == 16 && 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func decodeBareNumeric(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '&' || s[i+1] != '#' {
			continue
		}
		j := i + 2
		for j < len(s) && isWordByte(s[j]) {
			j++
		}
		if j == i+2 || (j < len(s) && s[j] == ';') {
			continue
		}
		cp, ok := leadingDecimal(s[i+2 : j])
		if !ok {
			continue
		}
		b.WriteString(s[last:i])
		b.WriteRune(cp)
		last = j
		i = j - 1
	}
	b.WriteString(s[last:])
	return b.String()
}

// leadingDecimal returns the value of the decimal digits at the start of
// run, or 0 when run does not start with a digit. ok is false when the
// value is not a Unicode scalar value.
func leadingDecimal(run string) (rune, bool) {
	var cp rune
	for i := 0; i < len(run) && '0' <= run[i] && run[i] <= '9'; i++ {
		cp = cp*10 + rune(run[i]-'0')
		if cp > utf8.MaxRune {
			return 0, false
		}
	}
	return cp, utf8.ValidRune(cp)
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}
