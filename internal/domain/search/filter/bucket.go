package filter

import (
	"fmt"
	"strings"
)

// Bucket is a named event duration range.
type Bucket string

// Duration buckets.
const (
	Short  Bucket = "short"
	Medium Bucket = "medium"
	Long   Bucket = "long"
)

// ParseBucket resolves a bucket name, case-insensitively.
func ParseBucket(s string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case Short, Medium, Long:
		return b, nil
	default:
		return "", fmt.Errorf("unknown duration %q (want short, medium or long)", s)
	}
}

// Contains reports whether minutes falls in the bucket.
// short < 60, medium 60..90 inclusive, long > 90.
func (b Bucket) Contains(minutes int) bool {
	switch b {
	case Short:
		return minutes < 60
	case Medium:
		return minutes >= 60 && minutes <= 90
	case Long:
		return minutes > 90
	}
	return false
}
