package upload

import (
	"strings"
	"testing"
)

func TestNamerUniqueNames(t *testing.T) {
	n, err := NewNamer(1)
	if err != nil {
		t.Fatalf("NewNamer: %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		name := n.Name("photo.JPG")
		if !strings.HasSuffix(name, ".JPG") {
			t.Fatalf("extension lost: %s", name)
		}
		if seen[name] {
			t.Fatalf("duplicate name %s", name)
		}
		seen[name] = true
	}
}

func TestNewNamerRejectsBadNode(t *testing.T) {
	if _, err := NewNamer(4096); err == nil {
		t.Fatalf("expected error for node out of range")
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"sofa.jpg":          ".jpg",
		"archive.tar.gz":    ".gz",
		"noext":             "",
		`C:\fake\chair.png`: ".png",
		"dir.d/file":        "",
		"weird.j pg":        "",
		".hidden":           ".hidden",
		"trailing.":         "",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}
