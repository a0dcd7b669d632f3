package main

import (
	"fmt"
	"strconv"
	"strings"

	"romcurator/internal/matching"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

func formatConfidence(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatReasons(candidate matching.Candidate) string {
	return strings.Join(candidate.Reasons, "; ")
}
