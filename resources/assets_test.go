package resources

import (
	"bytes"
	"testing"
)

func TestIconsEmbedded(t *testing.T) {
	for _, name := range []string{IconRunning, IconPaused, IconStopped, IconSuccess} {
		resource, err := Icon(name)
		if err != nil {
			t.Fatalf("Icon(%q): %v", name, err)
		}
		if !bytes.Contains(resource.Content(), []byte("<svg")) {
			t.Errorf("%s is not an SVG document", name)
		}
		if again := MustIcon(name); again != resource {
			t.Errorf("%s was not cached", name)
		}
	}
}

func TestIconMissing(t *testing.T) {
	if _, err := Icon("missing.svg"); err == nil {
		t.Fatal("expected an error for a missing icon")
	}
}
