package firescrape

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFragmentLen is the maximum length, in characters, of a sanitized
// filename fragment.
const MaxFragmentLen = 50

// FormatResult renders an article as a Markdown document: title heading,
// optional metadata lines, a separator and the body.
func FormatResult(r *FetchResult) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(r.Title)
	b.WriteString("\n\n")
	if r.Author != "" {
		b.WriteString("**Author**: " + r.Author + "\n\n")
	}
	if r.PublishTime != "" {
		b.WriteString("**Published**: " + r.PublishTime + "\n\n")
	}
	if r.URL != "" {
		b.WriteString("**URL**: " + r.URL + "\n\n")
	}
	b.WriteString("---\n\n")
	b.WriteString(r.Content)
	return b.String()
}

// SanitizeFragment makes s safe for use in a filename. Only letters,
// digits, spaces, hyphens and underscores are kept; the result is trimmed,
// truncated to MaxFragmentLen characters and spaces become underscores.
func SanitizeFragment(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(out) > MaxFragmentLen {
		out = string([]rune(out)[:MaxFragmentLen])
	}
	return strings.ReplaceAll(out, " ", "_")
}

// fragmentOr sanitizes s, substituting "untitled" for an empty result.
func fragmentOr(s string) string {
	if f := SanitizeFragment(s); f != "" {
		return f
	}
	return "untitled"
}

// SearchResultFilename names the file for the index-th result of a search.
func SearchResultFilename(index int, query, title string) string {
	return fmt.Sprintf("%03d_%s_%s.md", index, fragmentOr(query), fragmentOr(title))
}

// CrawlPageFilename names the file for the index-th page of a crawl.
func CrawlPageFilename(index int, title string) string {
	return fmt.Sprintf("page_%03d_%s.md", index, fragmentOr(title))
}

// BatchFilename names the file for the index-th item of a batch.
func BatchFilename(index int, title string) string {
	return fmt.Sprintf("%03d_%s.md", index, fragmentOr(title))
}

// Preview returns the first n characters of content and how many
// characters were left out.
func Preview(content string, n int) (string, int) {
	total := utf8.RuneCountInString(content)
	if total <= n {
		return content, 0
	}
	return string([]rune(content)[:n]), total - n
}

var (
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
	innerSpaceRe    = regexp.MustCompile(`(\S)[ \t]{2,}`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace normalizes line endings to \n, collapses runs of
// spaces after text, trims trailing spaces and limits blank lines to one.
// Leading indentation is kept so code blocks survive.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = trailingSpaceRe.ReplaceAllString(s, "")
	s = innerSpaceRe.ReplaceAllString(s, "$1 ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
