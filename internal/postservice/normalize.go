package postservice

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	excerptLength   = 150
	excerptEllipsis = "..."
)

var (
	coverImageTagRX = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	slugInvalidRX   = regexp.MustCompile(`[^a-z0-9]+`)

	markdownNoise = strings.NewReplacer("#", "", "*", "", "_", "", "`", "")
)

// deriveExcerpt returns the listing preview for a post. An explicit excerpt
// is used as-is (length-capped); otherwise the first 150 characters of the
// content with markdown emphasis and heading markers stripped, suffixed
// with an ellipsis.
func deriveExcerpt(content, explicit string) string {
	if explicit != "" {
		return truncateRunes(explicit, maxExcerptLength)
	}

	excerpt := truncateRunes(content, excerptLength)
	excerpt = markdownNoise.Replace(excerpt)
	excerpt = strings.TrimSpace(excerpt)

	return excerpt + excerptEllipsis
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// normalizeCoverImage accepts either a direct URL or a markdown image tag
// and returns the bare URL. Empty input stays empty.
func normalizeCoverImage(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if m := coverImageTagRX.FindStringSubmatch(input); m != nil {
		return strings.TrimSpace(m[1])
	}

	return input
}

// slugify lowercases the title and collapses anything that is not a letter
// or digit into single hyphens.
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidRX.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}

// newFilename derives the content filename for the file-backed store from
// the creation time and the slugified title.
func newFilename(date time.Time, title string) string {
	return date.Format("20060102150405") + "-" + slugify(title) + ".md"
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newPostID returns an opaque time-derived identifier, bumped monotonically
// so two posts created in the same nanosecond cannot collide.
func newPostID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	id := now.UnixNano()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id

	return strconv.FormatInt(id, 10)
}
