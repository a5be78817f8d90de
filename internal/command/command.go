// Package command turns free-form user text into typed playback commands.
//
// Classification runs an explicit ordered matcher list; the first matcher that
// accepts the text wins. The order is part of the contract: a default command
// containing a video link must classify as a default command, never as a
// direct control line.
package command

import (
	"regexp"
	"strings"

	"github.com/queuecast/queuecast/internal/textutil"
)

// Kind tags the result of classification.
type Kind int

const (
	// KindDefault is a request to change the fallback track ("default <arg>").
	KindDefault Kind = iota
	// KindComment is a free-text annotation starting with "#".
	KindComment
	// KindControl is a direct link or a reserved control token ("skip").
	KindControl
	// KindSearch is the fallback: treat the text as a search query.
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindComment:
		return "comment"
	case KindControl:
		return "control"
	case KindSearch:
		return "search"
	}
	return "unknown"
}

// Command is a classified line of input.
type Command struct {
	Kind Kind
	// Payload depends on Kind: the trimmed argument for KindDefault, the full
	// text for KindComment, the normalized text for KindControl, and the
	// ORIGINAL raw text for KindSearch (search providers rank better on the
	// user's own casing and script).
	Payload string
}

var (
	// Bracketed form first, then the spaced form. Both case-insensitive.
	defaultBracketRe = regexp.MustCompile(`(?i)^default\s*\[\s*(.+?)\s*\]$`)
	defaultSpacedRe  = regexp.MustCompile(`(?i)^default\s+(.+)$`)
)

// skipTokens are reserved control words, matched case-insensitively against
// the whole line. "スキップ" is the localized form.
var skipTokens = []string{"skip", "スキップ"}

// videoHosts are domain fragments that mark a line as a direct control line.
var videoHosts = []string{"youtube.com", "youtu.be"}

// matcher inspects normalized text (raw kept alongside for search payloads)
// and either claims the line or passes.
type matcher func(norm, raw string) (Command, bool)

// matchers is the classification order. Do not reorder.
var matchers = []matcher{
	matchDefault,
	matchComment,
	matchControl,
	matchSearch,
}

// Classify normalizes raw input and runs it through the matcher list.
func Classify(raw string) Command {
	norm := textutil.Normalize(raw)
	for _, m := range matchers {
		if cmd, ok := m(norm, raw); ok {
			return cmd
		}
	}
	// matchSearch always claims; unreachable.
	return Command{Kind: KindSearch, Payload: raw}
}

func matchDefault(norm, _ string) (Command, bool) {
	if m := defaultBracketRe.FindStringSubmatch(norm); m != nil {
		return Command{Kind: KindDefault, Payload: strings.TrimSpace(m[1])}, true
	}
	if m := defaultSpacedRe.FindStringSubmatch(norm); m != nil {
		return Command{Kind: KindDefault, Payload: strings.TrimSpace(m[1])}, true
	}
	return Command{}, false
}

func matchComment(norm, _ string) (Command, bool) {
	if strings.HasPrefix(norm, "#") {
		return Command{Kind: KindComment, Payload: norm}, true
	}
	return Command{}, false
}

func matchControl(norm, _ string) (Command, bool) {
	for _, host := range videoHosts {
		if strings.Contains(norm, host) {
			return Command{Kind: KindControl, Payload: norm}, true
		}
	}
	for _, tok := range skipTokens {
		if strings.EqualFold(norm, tok) {
			return Command{Kind: KindControl, Payload: norm}, true
		}
	}
	return Command{}, false
}

func matchSearch(_, raw string) (Command, bool) {
	return Command{Kind: KindSearch, Payload: raw}, true
}
