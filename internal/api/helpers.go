package api

import (
	"strconv"
	"strings"
)

func parseUintStrict(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// parseSegmentChunk extracts N from a "segments-N.ts" path component.
func parseSegmentChunk(segment string) (int, error) {
	trimmed := strings.TrimSuffix(segment, ".ts")
	trimmed = strings.TrimPrefix(trimmed, "segments-")
	return strconv.Atoi(trimmed)
}
