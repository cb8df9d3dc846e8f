package disinfecturl

import "strings"

// asciiSpace is the white space that makes an input blank.
const asciiSpace = " \t\n\v\f\r"

// SanitizeURL returns the cleaned form of raw, or Blank when raw carries
// a denied scheme or decodes to nothing. It returns false when raw is
// blank.
func SanitizeURL(raw string) (string, bool) {
	return defaultSanitizer.SanitizeURL(raw)
}

// Inspect is SanitizeURL returning the full verdict.
func Inspect(raw string) Verdict {
	return defaultSanitizer.Inspect(raw)
}

// SanitizeURL is the package-level SanitizeURL with reporting.
func (s *Sanitizer) SanitizeURL(raw string) (string, bool) {
	return s.Inspect(raw).Result()
}

// Inspect is the package-level Inspect with reporting.
func (s *Sanitizer) Inspect(raw string) Verdict {
	v := inspect(raw)
	if v.Replaced() {
		s.report(v)
	}
	return v
}

func inspect(raw string) Verdict {
	if isBlank(raw) {
		return Verdict{Kind: KindNull}
	}
	// Decoding can produce control characters, so it runs first.
	return Classify(FilterControl(DecodeEntities(raw)))
}

// isBlank reports whether s is empty or only ASCII white space. Other
// white space is left for FilterControl, so "\u2000" is not blank.
func isBlank(s string) bool {
	return strings.Trim(s, asciiSpace) == ""
}
