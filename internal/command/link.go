package command

import "regexp"

// videoIDLen is the length of a canonical YouTube video identifier. The
// length check is the only validity gate; we never verify the id exists.
const videoIDLen = 11

// linkRe covers the URL family we accept: youtu.be short links, /v/, /u/<c>/,
// /embed/, watch?v= and the &v= query variant. The capture stops at the first
// fragment, query or ampersand delimiter.
var linkRe = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|/embed/|watch\?v=|[?&]v=)([^#&?/\s]*)`)

// ExtractVideoID pulls a video identifier out of text containing a link.
// Returns ok=false when no recognized shape is present or the captured
// segment is not exactly 11 characters.
func ExtractVideoID(text string) (string, bool) {
	m := linkRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	id := m[1]
	if len(id) != videoIDLen {
		return "", false
	}
	return id, true
}
