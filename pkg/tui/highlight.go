package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// highlightCodeBlocks renders fenced code blocks in an agent reply with
// syntax highlighting. Text outside code fences passes through unchanged,
// and any highlighting failure falls back to the raw block.
func highlightCodeBlocks(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}

	var out strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])

		end := strings.Index(rest[start+3:], "```")
		if end < 0 {
			// Unterminated fence, leave as-is.
			out.WriteString(rest[start:])
			break
		}

		block := rest[start+3 : start+3+end]
		lang, code := splitFence(block)
		out.WriteString(highlightBlock(code, lang))
		rest = rest[start+3+end+3:]
	}
	return out.String()
}

// splitFence separates the language hint on the opening fence line from the
// code body.
func splitFence(block string) (lang, code string) {
	newline := strings.Index(block, "\n")
	if newline < 0 {
		return "", block
	}
	hint := strings.TrimSpace(block[:newline])
	if hint != "" && !strings.ContainsAny(hint, " \t") {
		return hint, block[newline+1:]
	}
	return "", block
}

func highlightBlock(code, lang string) string {
	if lang == "" {
		lang = "text"
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, code, lang, highlightFormatter, highlightStyle); err != nil {
		return code
	}
	return buf.String()
}
