package common

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitFields splits a comma-separated line and trims every field.
func SplitFields(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// AtoiFlag parses a 0/1 field.
func AtoiFlag(s string) (bool, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("flag out of range: %d", n)
}

// Itoa01 renders a flag as 0 or 1.
func Itoa01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
