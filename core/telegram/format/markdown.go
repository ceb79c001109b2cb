// Package format contains small text formatting helpers for Telegram output.
package format

import "strings"

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"`", "\\`",
)

// EscapeMarkdown escapes user-supplied text so it cannot break out of the
// surrounding Markdown (v1) formatting.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
