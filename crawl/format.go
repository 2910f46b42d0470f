package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash of a page's content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// Percent returns completed as a percentage of total, rounded to one decimal.
func Percent(completed, total int) float64 {
	if total <= 0 {
		return 100
	}
	p := float64(completed) * 1000 / float64(total)
	return float64(int(p+0.5)) / 10
}

// FormatPercent formats a progress percentage for log lines.
func FormatPercent(completed, total int) string {
	return fmt.Sprintf("%.1f%%", Percent(completed, total))
}
