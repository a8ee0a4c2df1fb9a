package readability

import (
	"strings"
	"unicode/utf8"
)

// charCount returns number of char in str.
func charCount(str string) int {
	return utf8.RuneCountInString(str)
}

func sliceToMap(strings ...string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, s := range strings {
		result[s] = struct{}{}
	}
	return result
}

// trim collapses every run of whitespace into a single space.
func trim(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// commaSegments returns the number of segments in str when it's split
// by commas. Trailing empty segments are not counted, so "a,b," has 2
// segments and "" has none.
func commaSegments(str string) int {
	parts := strings.Split(str, ",")
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return n
}

// leadingInt parses the integer at the start of str, ignoring anything
// after it. "200px" is 200, "auto" is 0.
func leadingInt(str string) int {
	str = strings.TrimSpace(str)
	sign := 1
	if strings.HasPrefix(str, "-") {
		sign = -1
		str = str[1:]
	} else if strings.HasPrefix(str, "+") {
		str = str[1:]
	}

	n := 0
	for _, r := range str {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return sign * n
}
