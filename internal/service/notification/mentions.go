package notification

import "regexp"

// A handle runs until whitespace or one of . , ? " ' ;
var mentionPattern = regexp.MustCompile(`@([^\s.,?"';]+)`)

// ParseMentions returns the distinct handles mentioned in content, in order of first appearance.
func ParseMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		handles = append(handles, m[1])
	}
	return handles
}
