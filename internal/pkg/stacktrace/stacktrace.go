// Package stacktrace trims goroutine dumps down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns "internal/<pkg>/<file>.go:<line>" for every frame of
// stack located under an internal/ directory.
func InternalPaths(stack []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		// "path/file.go:42 +0x1d" keeps "path/file.go:42".
		loc, _, _ := strings.Cut(line[idx+1:], " ")
		paths = append(paths, loc)
	}
	return paths
}
