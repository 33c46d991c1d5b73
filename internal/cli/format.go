package cli

import (
	"fmt"
	"strings"
)

// FormatNumber adds thousands separators (12450 -> "12,450").
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	length := len(str)

	var result strings.Builder
	result.Grow(length + length/3)

	for i, digit := range str {
		result.WriteRune(digit)
		remaining := length - i - 1
		if remaining > 0 && remaining%3 == 0 {
			result.WriteRune(',')
		}
	}

	return result.String()
}
