package disinfecturl

// Sanitize accepts a URL or an HTML fragment. The whole input always
// goes through SanitizeURL first, and whatever survives goes through
// SanitizeHTML, so a bare dangerous URL and dangerous anchors are both
// neutralized. Inputs other than string and non-nil *string yield false.
//
// The anchor pass parses its input as HTML, which decodes one more level
// of character references. A bare URL encoded twice, such as
// "&amp;#106;avascript:alert(1)", survives the URL pass as
// "&#106;avascript:alert(1)" and comes back as "javascript:alert(1)".
// Use SanitizeURL when the result is used as a URL.
func Sanitize(input any) (string, bool) {
	return defaultSanitizer.Sanitize(input)
}

// Sanitize is the package-level Sanitize with reporting.
func (s *Sanitizer) Sanitize(input any) (string, bool) {
	raw, ok := stringInput(input)
	if !ok {
		return "", false
	}
	cleaned, ok := s.SanitizeURL(raw)
	if !ok {
		return "", false
	}
	return s.SanitizeHTML(cleaned)
}

func stringInput(input any) (string, bool) {
	switch v := input.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}
