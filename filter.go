package disinfecturl

import "strings"

// controlEntities are HTML5 references the decoder does not know. They
// are removed as literal text, in any case.
var controlEntities = []string{"&newline;", "&tab;"}

// FilterControl removes the &newline; and &tab; tokens and every C0, C1,
// U+2000–U+200D and U+FEFF code point from s, then trims surrounding
// white space.
func FilterControl(s string) string {
	s = removeControlEntities(s)
	s = strings.Map(func(r rune) rune {
		if isControlRune(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func removeControlEntities(s string) string {
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
		for _, tok := range controlEntities {
			if hasPrefixFold(s[i:], tok) {
				b.WriteString(s[last:i])
				last = i + len(tok)
				i = last - 1
				break
			}
		}
	}
	b.WriteString(s[last:])
	return b.String()
}

func isControlRune(r rune) bool {
	switch {
	case r <= 0x1F:
		return true
	case 0x7F <= r && r <= 0x9F:
		return true
	case 0x2000 <= r && r <= 0x200D:
		return true
	}
	return r == 0xFEFF
}

// hasPrefixFold reports whether s begins with prefix, ignoring ASCII
// case only. prefix must be lower case.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}
