package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackAnchor is used when a heading produces no usable anchor characters.
const FallbackAnchor = "section"

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9\s\p{Z}-]`)
	spacePattern      = regexp.MustCompile(`[\s\p{Z}]+`)
	hyphenPattern     = regexp.MustCompile(`-+`)
)

// StripTags removes anything that looks like an HTML tag. Entities are left untouched.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Slugify converts heading text into a URL-fragment-safe anchor.
//
// The result only contains [a-z0-9-], never starts or ends with a hyphen and
// never contains two hyphens in a row. Slugify is idempotent.
func Slugify(text string) string {
	if text == "" {
		return FallbackAnchor
	}
	s := cases.Lower(language.Und).String(text)
	s = StripTags(s)
	s = disallowedPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = spacePattern.ReplaceAllString(s, "-")
	s = hyphenPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return FallbackAnchor
	}
	return s
}

// anchorSet hands out unique anchors for one render pass.
type anchorSet struct {
	seen map[string]int
}

func newAnchorSet() *anchorSet {
	return &anchorSet{seen: make(map[string]int)}
}

// unique returns base on first use and base-N (N starting at 2) afterwards.
// A suffixed candidate already handed out is skipped, so every returned
// anchor is distinct within the set.
func (a *anchorSet) unique(base string) string {
	if base == "" {
		base = FallbackAnchor
	}
	count := a.seen[base]
	a.seen[base] = count + 1
	if count == 0 {
		return base
	}
	for n := count + 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := a.seen[candidate]; taken {
			continue
		}
		a.seen[base] = n
		a.seen[candidate] = 1
		return candidate
	}
}
