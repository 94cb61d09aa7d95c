package sliceutils

import (
	"fmt"
	"strings"
)

// Quote each string in the list and separate them by commas.
func QuotedStringList(list []string) string {
	result := make([]string, len(list))
	for i, s := range list {
		result[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(result, ", ")
}

// One tab-indented bullet per item, joined by newlines.
func BulletedIndentedStringList(list []string) string {
	if len(list) == 0 {
		return ""
	}

	return "\t- " + strings.Join(list, "\n\t- ")
}
