package gocd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidBuild indicates a BUILD argument that is not pipeline-name/counter.
var ErrInvalidBuild = errors.New("invalid build")

// Ref identifies one pipeline run narrowed to a stage and job.
type Ref struct {
	Pipeline string
	Counter  int
	Stage    string
	Job      string
}

// ParseBuild splits a BUILD argument of the form pipeline-name/counter.
func ParseBuild(s string) (string, int, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", 0, fmt.Errorf("%w %q: expected pipeline-name/counter", ErrInvalidBuild, s)
	}
	counter, err := strconv.Atoi(parts[1])
	if err != nil || counter < 0 {
		return "", 0, fmt.Errorf("%w %q: counter must be a non-negative integer", ErrInvalidBuild, s)
	}
	return parts[0], counter, nil
}
