package disinfecturl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// ErrUnknownMode is returned by ParseMode for names it does not know.
var ErrUnknownMode = errors.New("disinfecturl: unknown mode")

// Mode selects which entrypoint SanitizeAs runs.
type Mode string

const (
	// ModeAuto runs Sanitize: the URL pipeline, then the anchor rewriter.
	ModeAuto Mode = "auto"
	// ModeURL runs only the URL pipeline.
	ModeURL Mode = "url"
	// ModeHTML runs only the anchor rewriter.
	ModeHTML Mode = "html"
)

// ParseMode converts a mode name. The empty string means ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeURL, ModeHTML:
		return Mode(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Sanitizer carries optional reporting hooks around the sanitizing
// functions. The zero value is ready to use and reports nothing.
type Sanitizer struct {
	// Logger receives a debug record for every replaced URL. Nil
	// disables logging.
	Logger *slog.Logger

	// OnReplace, if set, is called with the verdict of every URL that
	// was replaced with Blank.
	OnReplace func(Verdict)
}

var defaultSanitizer = &Sanitizer{}

// SanitizeAs runs the entrypoint selected by mode. Values that are not
// strings yield false in every mode.
func (s *Sanitizer) SanitizeAs(mode Mode, input any) (string, bool) {
	switch mode {
	case ModeURL:
		raw, ok := stringInput(input)
		if !ok {
			return "", false
		}
		return s.SanitizeURL(raw)
	case ModeHTML:
		raw, ok := stringInput(input)
		if !ok {
			return "", false
		}
		return s.SanitizeHTML(raw)
	}
	return s.Sanitize(input)
}

func (s *Sanitizer) report(v Verdict) {
	if s.OnReplace != nil {
		s.OnReplace(v)
	}
	if s.Logger == nil || !s.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.Logger.Debug("url replaced",
		"kind", v.Kind.String(),
		"scheme", truncate(v.Scheme, 64),
	)
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
