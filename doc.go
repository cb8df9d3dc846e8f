// Package disinfecturl neutralizes script-injection vectors in URLs and
// in the href attributes of HTML anchors.
//
// # Overview
//
// disinfecturl is a last-line filter for untrusted strings that are about
// to be rendered or stored. A URL is decoded, stripped of control
// characters and then classified by its scheme. Values whose scheme
// begins with javascript, data or vbscript (in any case, and in any of
// the usual obfuscated spellings) are replaced with [Blank]. Everything
// else is passed through in its cleaned form.
//
// HTML fragments are parsed with golang.org/x/net/html, every <a>
// element at any depth has its href rewritten, and the fragment is
// rendered back to a string.
//
// # Pipeline
//
// [SanitizeURL] runs three stages in a fixed order:
//   - [DecodeEntities] turns character references such as &#106; and
//     unterminated ones such as &#0000106 into literal characters
//   - [FilterControl] removes &newline; and &tab;, control and
//     format characters, then trims white space
//   - [Classify] decides between relative reference, no scheme, allowed
//     scheme and denied scheme
//
// [Sanitize] is the type-guarded entrypoint. It always runs the URL
// pipeline over the whole input first and then rewrites the anchors of
// whatever survives.
//
// # Null results
//
// Functions that may produce "no value" return (string, bool). The bool
// is false when the input was blank (or, for [Sanitize], not a string).
// A rejected URL is never reported as false; it becomes [Blank].
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. A [Sanitizer]
// should not be mutated after first use.
//
// # Example
//
//	clean, ok := disinfecturl.Sanitize(userInput)
package disinfecturl
