package disinfecturl_test

import (
	"testing"

	"github.com/njchilds90/disinfecturl"
	"github.com/stretchr/testify/assert"
)

func TestFilterControl(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "www.example.com", "www.example.com"},
		{"control entities any case", "a&NewLine;b&TAB;c&newline;d&tab;e", "abcde"},
		{"single pass over entities", "&new&tab;line;", "&newline;"},
		{"c0 and del", "a\u0000b\u001Fc\u007Fd", "abcd"},
		{"c1", "a\u0080b\u009Fc", "abc"},
		{"general punctuation block", "a\u2000b\u200Bc\u200Dd", "abcd"},
		{"bom", "\uFEFFa\uFEFF", "a"},
		{"directional mark is kept", "a\u200Eb", "a\u200Eb"},
		{"trims ascii space", "   x    ", "x"},
		{"trims unicode space", "\u00A0x\u3000", "x"},
		{"removal exposes spaces to trim", " \u000E javascript:", "javascript:"},
		{"harmless unicode kept", "www.example.com/лот.рфшишкиü–", "www.example.com/лот.рфшишкиü–"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, disinfecturl.FilterControl(tt.in))
		})
	}
}
