// Package hsk handles the HSK 3.0 character lists: downloading the
// published charlist, parsing it into per-level character sets, and
// ordering level labels.
package hsk

// Level labels as they appear in the dataset. Levels one through six are
// plain digits; the top band is the combined "7-9". BeyondHSK marks
// material that uses characters outside every list.
const (
	Level79   = "7-9"
	BeyondHSK = "beyond-hsk"
)

// Rank maps a level label to a sortable integer. Unknown or empty labels
// sort last.
func Rank(level string) int {
	switch level {
	case "1", "2", "3", "4", "5", "6":
		return int(level[0] - '0')
	case Level79:
		return 7
	case BeyondHSK:
		return 8
	default:
		return 9
	}
}

// Less orders level labels from easiest to hardest.
func Less(a, b string) bool {
	return Rank(a) < Rank(b)
}

// Lower returns the easier of two level labels.
func Lower(a, b string) string {
	if Less(b, a) {
		return b
	}
	return a
}

// Max returns the harder of two level labels, treating "" as no level.
func Max(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if Less(a, b) {
		return b
	}
	return a
}
