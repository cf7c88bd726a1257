package main

import "testing"

func TestVersionOK(t *testing.T) {
	for _, test := range []struct {
		have string
		min  string
		want bool
	}{
		{"go1.21", "go1.21", true},
		{"go1.21.5", "go1.21", true},
		{"go1.22.3", "go1.21", true},
		{"go2.0", "go1.21", true},
		{"go1.20.14", "go1.21", false},
		{"go1.4", "go1.21", false},
		// Development builds are assumed new enough.
		{"devel +abc123", "go1.21", true},
		{"go1.21rc1", "go1.21", true},
	} {
		if got := versionOK(test.have, test.min); got != test.want {
			t.Fatalf("versionOK(%q, %q) = %v; want %v", test.have, test.min, got, test.want)
		}
	}
}
