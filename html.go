package disinfecturl

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SanitizeHTML parses fragment as the content of a <body> element,
// rewrites the href of every <a> element through SanitizeURL and renders
// the result. An href that sanitizes to nothing is removed. It returns
// false when fragment is blank.
func SanitizeHTML(fragment string) (string, bool) {
	return defaultSanitizer.SanitizeHTML(fragment)
}

// SanitizeHTMLReader reads an HTML fragment from r and applies
// SanitizeHTML.
func SanitizeHTMLReader(r io.Reader) (string, bool, error) {
	return defaultSanitizer.SanitizeHTMLReader(r)
}

// SanitizeHTML is the package-level SanitizeHTML with reporting.
func (s *Sanitizer) SanitizeHTML(fragment string) (string, bool) {
	if isBlank(fragment) {
		return "", false
	}
	out, err := s.rewriteAnchors(strings.NewReader(fragment))
	if err != nil {
		// A strings.Reader never fails; keep the function total anyway.
		return Blank, true
	}
	return out, true
}

// SanitizeHTMLReader is the package-level SanitizeHTMLReader with
// reporting.
func (s *Sanitizer) SanitizeHTMLReader(r io.Reader) (string, bool, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", false, err
	}
	out, ok := s.SanitizeHTML(string(b))
	return out, ok, nil
}

// bodyContext makes ParseFragment treat its input like the inside of a
// document body, so text and inline markup are kept where they are.
func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func (s *Sanitizer) rewriteAnchors(r io.Reader) (string, error) {
	nodes, err := html.ParseFragment(r, bodyContext())
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			n.Attr = s.rewriteHrefs(n.Attr)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteHrefs sanitizes every href in attrs, including the xlink:href
// of SVG anchors. Anchors without an href are left alone, which is what
// a null href sanitizes to.
func (s *Sanitizer) rewriteHrefs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Key == "href" && (a.Namespace == "" || a.Namespace == "xlink") {
			v, ok := s.SanitizeURL(a.Val)
			if !ok {
				continue
			}
			a.Val = v
		}
		out = append(out, a)
	}
	return out
}
