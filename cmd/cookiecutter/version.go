package main

import "strings"

// versionString joins the build version with the commit and date when the
// release build stamped them.
func versionString() string {
	parts := []string{strings.TrimSpace(version)}
	if c := strings.TrimSpace(commit); c != "" {
		parts = append(parts, "commit "+c)
	}
	if d := strings.TrimSpace(date); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, ", ")
}
