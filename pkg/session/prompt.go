package session

import (
	"fmt"

	"github.com/Mokshitha4/Aura/pkg/types"
)

// DefaultContextBudget is the maximum number of characters of page content
// included in a submission, bounding the request payload size.
const DefaultContextBudget = 4000

// contextTemplate is the fixed instruction wrapper separating webpage
// content from the user's question. The question always appears verbatim at
// the end.
const contextTemplate = `Here is the content of the webpage I am currently viewing:

---
%s
---

Based on the webpage content above, please answer this question: %s`

// BuildPrompt assembles the text dispatched for one submission. Without page
// context the raw text passes through unmodified; with context, the content
// is truncated to the budget and wrapped ahead of the question.
func BuildPrompt(req types.CaptureRequest, budget int) string {
	if req.PageContext == "" {
		return req.RawText
	}

	content := truncate(req.PageContext, budget)
	return fmt.Sprintf(contextTemplate, content, req.RawText)
}

// truncate limits s to at most n characters. n <= 0 means unlimited.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
