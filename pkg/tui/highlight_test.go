package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightCodeBlocks(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		in := "no code here, just words"
		assert.Equal(t, in, highlightCodeBlocks(in))
	})

	t.Run("surrounding text preserved", func(t *testing.T) {
		in := "before\n```go\nfmt.Println(\"hi\")\n```\nafter"
		got := highlightCodeBlocks(in)
		assert.True(t, strings.HasPrefix(got, "before\n"))
		assert.True(t, strings.HasSuffix(got, "\nafter"))
		assert.NotContains(t, got, "```")
	})

	t.Run("unterminated fence left alone", func(t *testing.T) {
		in := "look at ```this"
		assert.Equal(t, in, highlightCodeBlocks(in))
	})

	t.Run("code content survives highlighting", func(t *testing.T) {
		got := highlightCodeBlocks("```go\npackage main\n```")
		assert.Contains(t, got, "package")
		assert.Contains(t, got, "main")
	})
}

func TestSplitFence(t *testing.T) {
	lang, code := splitFence("python\nprint(1)\n")
	assert.Equal(t, "python", lang)
	assert.Equal(t, "print(1)\n", code)

	lang, code = splitFence("no newline at all")
	assert.Equal(t, "", lang)
	assert.Equal(t, "no newline at all", code)
}

func TestWordWrap(t *testing.T) {
	t.Run("short lines untouched", func(t *testing.T) {
		assert.Equal(t, "hello world", wordWrap("hello world", 40))
	})

	t.Run("long lines broken at word boundaries", func(t *testing.T) {
		got := wordWrap("one two three four five six", 10)
		for _, line := range strings.Split(got, "\n") {
			assert.LessOrEqual(t, len(line), 10)
		}
	})

	t.Run("indented lines preserved", func(t *testing.T) {
		in := "  indented code line that is much longer than the wrap width"
		assert.Equal(t, in, wordWrap(in, 10))
	})
}

func TestFormatTokenCount(t *testing.T) {
	assert.Equal(t, "512", formatTokenCount(512))
	assert.Equal(t, "1.5K", formatTokenCount(1500))
	assert.Equal(t, "2.0M", formatTokenCount(2000000))
}
