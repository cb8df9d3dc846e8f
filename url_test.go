package disinfecturl_test

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/njchilds90/disinfecturl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deniedSchemes = []string{"javascript", "data", "vbscript"}

func TestSanitizeURL_Blank(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n  ", "\v\f\r"} {
		got, ok := disinfecturl.SanitizeURL(in)
		assert.False(t, ok, "input %q", in)
		assert.Empty(t, got)
	}
}

func TestSanitizeURL_Preserved(t *testing.T) {
	tests := []string{
		"http://example.com/path/to:something",
		"http://example.com:4567/path/to:something",
		"https://example.com",
		"https://example.com:4567/path/to:something",
		"./path/to/my.json",
		"/path/to/my.json",
		"//google.com/robots.txt",
		"www.example.com",
		"com.example.demo://example",
		"mailto:test@example.com?subject=hello+world",
		"www.example.com/with-áccêntš",
		"www.example.com/лот.рфшишкиü–",
		"not_javascript:alert(1)",
		"about:blank",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, ok := disinfecturl.SanitizeURL(in)
			require.True(t, ok)
			assert.Equal(t, in, got)
		})
	}
}

func TestSanitizeURL_UnwantedCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"control characters", "www.example.com/\u200D\u0000\u001F\x00\x1F\uFEFFfoo", "www.example.com/foo"},
		{"surrounding white space", "   http://example.com/path/to:something    ", "http://example.com/path/to:something"},
		{"newline entities", "https://example.com&NewLine;&NewLine;/something", "https://example.com/something"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := disinfecturl.SanitizeURL(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeURL_EncodedAttacks(t *testing.T) {
	vectors := []string{
		"&#0000106&#0000097&#0000118&#0000097&#0000115&#0000099&#0000114&#0000105&#0000112&#0000116&#0000058&#0000097&#0000108&#0000101&#0000114&#0000116&#0000040&#0000039&#0000088&#0000083&#0000083&#0000039&#0000041",
		"&#106;&#97;&#118;&#97;&#115;&#99;&#114;&#105;&#112;&#116;&#58;&#97;&#108;&#101;&#114;&#116;&#40;&#39;&#88;&#83;&#83;&#39;&#41;",
		"&#x6A&#x61&#x76&#x61&#x73&#x63&#x72&#x69&#x70&#x74&#x3A&#x61&#x6C&#x65&#x72&#x74&#x28&#x27&#x58&#x53&#x53&#x27&#x29",
		"jav&#x09;ascript:alert('XSS');",
		" &#14; javascript:alert('XSS');",
		"javasc&Tab;ript: alert('XSS');",
	}
	for _, in := range vectors {
		got, ok := disinfecturl.SanitizeURL(in)
		require.True(t, ok)
		assert.Equal(t, disinfecturl.Blank, got, "vector %q", in)
	}
}

func TestSanitizeURL_EncodedSafeURL(t *testing.T) {
	in := "&#104;&#116;&#116;&#112;&#115;&#0000058//&#101;&#120;&#97;&#109;&#112;&#108;&#101;&#46;&#99;&#111;&#109;/&#0000106&#0000097&#0000118&#0000097&#0000115&#0000099&#0000114&#0000105&#0000112&#0000116&#0000058&#0000097&#0000108&#0000101&#0000114&#0000116&#0000040&#0000039&#0000088&#0000083&#0000083&#0000039&#0000041"
	got, ok := disinfecturl.SanitizeURL(in)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/javascript:alert('XSS')", got)
}

func TestSanitizeURL_DeniedSchemes(t *testing.T) {
	for _, scheme := range deniedSchemes {
		t.Run(scheme, func(t *testing.T) {
			check := func(in, want string) {
				t.Helper()
				got, ok := disinfecturl.SanitizeURL(in)
				require.True(t, ok)
				assert.Equal(t, want, got, "input %q", in)
			}

			check(scheme+":alert(document.domain)", disinfecturl.Blank)
			check("not_"+scheme+":alert(document.domain)", "not_"+scheme+":alert(document.domain)")
			check("&!*"+scheme+":alert(document.domain)", disinfecturl.Blank)
			check(scheme+"&colon;alert(document.domain)", disinfecturl.Blank)
			check(scheme+"&COLON;alert(document.domain)", disinfecturl.Blank)
			check(alternateCase(scheme)+":alert(document.domain)", disinfecturl.Blank)
			check("    "+scheme+":alert(document.domain)", disinfecturl.Blank)
			check("http://example.com#"+scheme+":foo", "http://example.com#"+scheme+":foo")

			hidden, err := url.QueryUnescape(scheme[:2] + "%EF%BB%BF%EF%BB%BF" + scheme[2:3] + "%e2%80%8b" + scheme[3:] + ":alert(document.domain)")
			require.NoError(t, err)
			check(hidden, disinfecturl.Blank)

			padded, err := url.QueryUnescape("%20%20%20%20" + scheme + ":alert(document.domain)")
			require.NoError(t, err)
			check(padded, disinfecturl.Blank)
		})
	}
}

func TestSanitizeURL_DecodesToNothing(t *testing.T) {
	v := disinfecturl.Inspect("&#0&tab;\u200B")
	assert.Equal(t, disinfecturl.KindEmpty, v.Kind)
	assert.Equal(t, disinfecturl.Blank, v.Value)
}

func TestSanitizeURL_UnicodeSpaceIsNotBlank(t *testing.T) {
	for _, in := range []string{"\u2000", "\u00A0", " \u3000 "} {
		v := disinfecturl.Inspect(in)
		assert.Equal(t, disinfecturl.KindEmpty, v.Kind, "input %q", in)
		assert.Equal(t, disinfecturl.Blank, v.Value, "input %q", in)
	}
}

func TestSanitizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://example.com",
		"  ./a/b:c ",
		"javascript:alert(1)",
		"&#x6A&#x61",
		"jav&#x09;ascript:alert('XSS');",
		"www.example.com/\u200Dfoo",
		"mailto:test@example.com",
		"http://example.com#data:foo",
	}
	for _, in := range inputs {
		once, ok := disinfecturl.SanitizeURL(in)
		require.True(t, ok)
		twice, ok := disinfecturl.SanitizeURL(once)
		require.True(t, ok)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestInspect_Kinds(t *testing.T) {
	tests := []struct {
		in   string
		kind disinfecturl.Kind
	}{
		{"   ", disinfecturl.KindNull},
		{"\u0000", disinfecturl.KindEmpty},
		{"/a:b", disinfecturl.KindRelative},
		{"example", disinfecturl.KindNoScheme},
		{"https://x", disinfecturl.KindAllowed},
		{"DATA:text/html,x", disinfecturl.KindDenied},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, disinfecturl.Inspect(tt.in).Kind, "input %q", tt.in)
	}
}

func TestSanitizer_ReportsReplacements(t *testing.T) {
	var logs bytes.Buffer
	var seen []disinfecturl.Verdict
	s := &disinfecturl.Sanitizer{
		Logger:    slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		OnReplace: func(v disinfecturl.Verdict) { seen = append(seen, v) },
	}

	got, ok := s.SanitizeURL("https://example.com")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", got)
	assert.Empty(t, seen)

	got, ok = s.SanitizeURL("vbscript:msgbox")
	require.True(t, ok)
	assert.Equal(t, disinfecturl.Blank, got)
	require.Len(t, seen, 1)
	assert.Equal(t, disinfecturl.KindDenied, seen[0].Kind)
	assert.Equal(t, "vbscript:", seen[0].Scheme)
	assert.Contains(t, logs.String(), "url replaced")
	assert.Contains(t, logs.String(), "kind=denied")
}

func TestSanitizeURL_LongInput(t *testing.T) {
	in := "https://example.com/" + strings.Repeat("&#:a", 50000)
	got, ok := disinfecturl.SanitizeURL(in)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "https://example.com/"))
}

func TestSanitizeURL_AmpersandFlood(t *testing.T) {
	for _, in := range []string{
		strings.Repeat("&", 1<<20),
		"javascript:" + strings.Repeat("&", 1<<20),
		strings.Repeat("&colon", 1<<17),
	} {
		start := time.Now()
		_, ok := disinfecturl.SanitizeURL(in)
		require.True(t, ok)
		assert.Less(t, time.Since(start), 2*time.Second, "input of %d bytes", len(in))
	}
}

// alternateCase upper-cases every other letter of s.
func alternateCase(s string) string {
	b := []byte(s)
	for i := 0; i < len(b); i += 2 {
		b[i] = b[i] - 'a' + 'A'
	}
	return string(b)
}
