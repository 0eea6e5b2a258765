package markdown

import "strings"

// UntitledTitle is reported when a document has no level-1 heading.
const UntitledTitle = "Untitled"

// titleFromLine reports whether line is a level-1 ATX heading and returns its text.
func titleFromLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "# ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "#")), true
}

// TitleLine returns the text of the first level-1 heading line in content.
func TitleLine(content string) (string, bool) {
	for line := range strings.SplitSeq(content, "\n") {
		if title, ok := titleFromLine(strings.TrimSuffix(line, "\r")); ok {
			return title, true
		}
	}
	return "", false
}

// StripTitle removes the first level-1 heading line, wherever it occurs, and
// returns its text together with the remaining body. The heading's line
// terminator is kept so surrounding line structure is preserved. Without a
// level-1 heading the title is UntitledTitle and the body is returned as is.
func StripTitle(content string) (title, body string) {
	start := 0
	for start <= len(content) {
		end := strings.IndexByte(content[start:], '\n')
		lineEnd := len(content)
		if end >= 0 {
			lineEnd = start + end
		}
		textEnd := lineEnd
		if textEnd > start && content[textEnd-1] == '\r' {
			textEnd--
		}
		if t, ok := titleFromLine(content[start:textEnd]); ok {
			return t, content[:start] + content[textEnd:]
		}
		if end < 0 {
			break
		}
		start = lineEnd + 1
	}
	return UntitledTitle, content
}
