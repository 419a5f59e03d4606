// Package speech prepares assistant text for a TTS engine: it strips
// markdown down to speakable prose and picks a voice from the caller's
// available set by name-matching heuristics.
package speech

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRe  = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\n?(.*?)\\n?```")
	inlineCodeRe  = regexp.MustCompile("`([^`]*)`")
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRe     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	listMarkerRe  = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	blockquoteRe  = regexp.MustCompile(`(?m)^>\s?`)
	emphasisRe    = regexp.MustCompile(`(\*\*|__|\*|_|~~)([^*_~]+?)(\*\*|__|\*|_|~~)`)
	multiSpaceRe  = regexp.MustCompile(`[ \t]{2,}`)
	multiBlankRe  = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown removes markdown syntax while keeping the readable text, so
// the TTS engine does not speak asterisks and backticks.
func StripMarkdown(text string) string {
	out := fencedCodeRe.ReplaceAllString(text, "$1")
	out = inlineCodeRe.ReplaceAllString(out, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	out = headingRe.ReplaceAllString(out, "")
	out = listMarkerRe.ReplaceAllString(out, "")
	out = blockquoteRe.ReplaceAllString(out, "")
	for i := 0; i < 3; i++ {
		out = emphasisRe.ReplaceAllString(out, "$2")
	}
	out = multiSpaceRe.ReplaceAllString(out, " ")
	out = multiBlankRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// Voice is one entry from the caller's speech-synthesis voice list.
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// preferredVoiceNames are tried first, in order. These are the natural
// sounding voices commonly shipped by browsers and platforms.
var preferredVoiceNames = []string{
	"Samantha",
	"Karen",
	"Moira",
	"Tessa",
	"Google US English",
	"Microsoft Zira",
	"Microsoft Aria",
}

// ChooseVoice picks a voice: a preferred name match wins (substring,
// case-insensitive), then the first voice whose lang starts with the wanted
// language, then the first voice at all. Returns nil for an empty list.
func ChooseVoice(available []Voice, lang string) *Voice {
	if len(available) == 0 {
		return nil
	}
	for _, want := range preferredVoiceNames {
		for i := range available {
			if strings.Contains(strings.ToLower(available[i].Name), strings.ToLower(want)) {
				return &available[i]
			}
		}
	}
	if lang != "" {
		prefix := strings.ToLower(lang)
		for i := range available {
			if strings.HasPrefix(strings.ToLower(available[i].Lang), prefix) {
				return &available[i]
			}
		}
	}
	return &available[0]
}
