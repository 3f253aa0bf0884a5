package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		contentPolicy = bluemonday.NewPolicy()
		contentPolicy.AllowStandardURLs()
		contentPolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		contentPolicy.AllowAttrs("href").OnElements("a")
		contentPolicy.RequireNoFollowOnLinks(true)
		contentPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	})
}

// StripTags removes all markup and surrounding whitespace, leaving plain
// text. Use for identifiers typed by users, such as usernames.
func StripTags(s string) string {
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// HTML keeps basic formatting (paragraphs, headings, emphasis, lists, code,
// links) and drops everything else, including scripts, event handlers and
// javascript: URLs. Use for rendered Markdown.
func HTML(s string) string {
	initPolicies()
	return contentPolicy.Sanitize(s)
}
