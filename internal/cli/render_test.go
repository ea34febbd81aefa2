package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,pdf,dot", []string{"svg", "pdf", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "pdf", "png", "dot"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, format string
		multiple       bool
		want           string
	}{
		{"", "svg", false, "anatomy_finger.svg"},
		{"", "png", true, "anatomy_finger.png"},
		{"out.svg", "svg", false, "out.svg"},
		{"out.svg", "pdf", true, "out.pdf"},
		{"out", "dot", true, "out.dot"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, "anatomy_finger", tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"finger":           "finger",
		"part of":          "part_of",
		"UBERON:0002389":   "UBERON_0002389",
		"a/b#c":            "a_b_c",
		"already-fine_1.0": "already-fine_1.0",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	path := testOntologyPath(t)
	dest := filepath.Join(t.TempDir(), "finger.dot")

	if _, err := execute(t, "render", path, "finger", "-f", "dot", "-o", dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("not a DOT document:\n%s", dot)
	}
	for _, name := range []string{"finger", "hand", "limb"} {
		if !strings.Contains(dot, name) {
			t.Errorf("DOT missing %s:\n%s", name, dot)
		}
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	path := testOntologyPath(t)
	if _, err := execute(t, "render", path, "finger", "-f", "gif"); err == nil {
		t.Error("expected error for gif")
	}
}
