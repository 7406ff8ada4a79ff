package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Slugify converts a label to a URL-safe kebab-case slug.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// TitleFromSlug converts "satin-hairbow-navy" to "Satin Hairbow Navy".
func TitleFromSlug(slug string) string {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

var packSizeRe = regexp.MustCompile(`(?:pack|combo|set)[-\s]+of[-\s]+(\d+)`)

// ParsePackSize extracts an explicit pack size from a folder label, e.g.
// "Tulip pack of 6" -> 6. Returns 0 when the label carries none. This is the
// structural pack-size key the pricing rules match on; product names are
// never parsed for pricing.
func ParsePackSize(label string) int {
	m := packSizeRe.FindStringSubmatch(strings.ToLower(label))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// naturalLess orders strings with embedded numbers numerically, so
// "img2.jpg" sorts before "img10.jpg".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := takeNumber(a)
			nb, rb := takeNumber(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeNumber(s string) (int, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}
