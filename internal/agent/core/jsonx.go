package core

// ExtractFirstJSON finds the first balanced top-level JSON object in a string.
// Models frequently wrap their JSON in prose or code fences; this strips both.
// Returns the input unchanged when no balanced object is found.
func ExtractFirstJSON(s string) string {
	start := -1
	depth := 0
	for i, ch := range s {
		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			if depth > 0 {
				depth--
			}
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return s
}
