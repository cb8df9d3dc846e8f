package disinfecturl

// Blank is the inert value that replaces every rejected URL.
const Blank = "about:blank"

// deniedSchemes are matched as prefixes of the scheme region.
var deniedSchemes = []string{"javascript", "data", "vbscript"}

// colonEntity also terminates a scheme region.
const colonEntity = "&colon;"

// Kind is the outcome of classifying a URL.
type Kind int

const (
	// KindNull means the input was blank; there is no result.
	KindNull Kind = iota
	// KindEmpty means the input decoded to nothing and was replaced.
	KindEmpty
	// KindRelative means the value starts with '.' or '/'.
	KindRelative
	// KindNoScheme means no scheme region was found.
	KindNoScheme
	// KindAllowed means the scheme region is not on the denylist.
	KindAllowed
	// KindDenied means the scheme region is on the denylist and the
	// value was replaced.
	KindDenied
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindEmpty:
		return "empty"
	case KindRelative:
		return "relative"
	case KindNoScheme:
		return "no-scheme"
	case KindAllowed:
		return "allowed"
	case KindDenied:
		return "denied"
	}
	return "unknown"
}

// Verdict is the decision taken for one URL.
type Verdict struct {
	Kind Kind
	// Value is the sanitized URL. It is empty for KindNull.
	Value string
	// Scheme is the scheme region that was tested, if any.
	Scheme string
}

// Result returns the sanitized value and false when there is none.
func (v Verdict) Result() (string, bool) {
	return v.Value, v.Kind != KindNull
}

// Replaced reports whether the input was replaced with Blank.
func (v Verdict) Replaced() bool {
	return v.Kind == KindEmpty || v.Kind == KindDenied
}

// Classify decides whether an already decoded and filtered string may be
// used as is. s is returned unchanged unless its scheme region, with any
// leading run of non-word characters removed, begins with a denied
// scheme, in which case the value is Blank.
func Classify(s string) Verdict {
	if s == "" {
		return Verdict{Kind: KindEmpty, Value: Blank}
	}
	if s[0] == '.' || s[0] == '/' {
		return Verdict{Kind: KindRelative, Value: s}
	}
	region, ok := schemeRegion(s)
	if !ok {
		return Verdict{Kind: KindNoScheme, Value: s}
	}
	if isDenied(region) {
		return Verdict{Kind: KindDenied, Value: Blank, Scheme: region}
	}
	return Verdict{Kind: KindAllowed, Value: s, Scheme: region}
}

// schemeRegion returns the longest prefix of s that ends with ':' or
// "&colon;" and has at least one character before that terminator.
func schemeRegion(s string) (string, bool) {
	for i := len(s) - 1; i >= 1; i-- {
		switch {
		case s[i] == ':':
			return s[:i+1], true
		case s[i] == '&' && hasPrefixFold(s[i:], colonEntity):
			return s[:i+len(colonEntity)], true
		}
	}
	return "", false
}

func isDenied(region string) bool {
	i := 0
	for i < len(region) && !isWordByte(region[i]) {
		i++
	}
	for _, scheme := range deniedSchemes {
		if hasPrefixFold(region[i:], scheme) {
			return true
		}
	}
	return false
}
