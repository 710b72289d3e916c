package core

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s"',]+`)

// ExtractURLs returns the distinct URLs found in text, in order of first
// occurrence. Applying it twice to the same text yields the same list.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
