package loader

import (
	"strings"
	"testing"
)

func TestStyleClassifier(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading 1", 1},
		{"Heading 3", 3},
		{"heading 2", 2},
		{"Heading3", 3},
		{"  Heading 4  ", 4},
		{"Normal", 0},
		{"Title", 0},
		{"Heading", 0},
		{"Heading zero", 0},
		{"", 0},
	}
	c := StyleClassifier{}
	for _, tt := range tests {
		if got := c.Classify(RawParagraph{StyleName: tt.style}); got != tt.want {
			t.Errorf("Classify(style=%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}

func TestFontSizeClassifier(t *testing.T) {
	tests := []struct {
		size float64
		want int
	}{
		{18, 1},
		{14.5, 1},
		{13, 2},
		{12.1, 2},
		{11, 3},
		{10.5, 3},
		{10, 0},
		{9, 0},
		{0, 0},
	}
	c := FontSizeClassifier{}
	for _, tt := range tests {
		if got := c.Classify(RawParagraph{FontSize: tt.size}); got != tt.want {
			t.Errorf("Classify(size=%g) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestFontSizeClassifier_CustomThresholds(t *testing.T) {
	c := FontSizeClassifier{Thresholds: []float64{20}}
	if got := c.Classify(RawParagraph{FontSize: 22}); got != 1 {
		t.Errorf("expected level 1 above custom threshold, got %d", got)
	}
	if got := c.Classify(RawParagraph{FontSize: 15}); got != 0 {
		t.Errorf("expected body text below custom threshold, got %d", got)
	}
}

func TestPatternClassifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"top level", "5 Security", 1},
		{"second level", "5.5 Procedures", 2},
		{"fourth level", "5.5.1.2 Procedure description", 4},
		{"plain text", "The UE shall send", 0},
		{"number only", "42", 0},
		{"multi-line", "5.5 Procedures\ncontinued", 0},
		{"empty", "", 0},
	}
	c := PatternClassifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(RawParagraph{Text: tt.text}); got != tt.want {
				t.Errorf("Classify(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestPatternClassifier_LongLineIsBodyText(t *testing.T) {
	long := "5.5.1.2 " + strings.Repeat("x", 150)
	c := PatternClassifier{}
	if got := c.Classify(RawParagraph{Text: long}); got != 0 {
		t.Errorf("expected long numbered line to classify as body text, got level %d", got)
	}

	strict := PatternClassifier{MaxLineLen: 10}
	if got := strict.Classify(RawParagraph{Text: "5.5 Procedures"}); got != 0 {
		t.Errorf("expected line above custom max length to be body text, got %d", got)
	}
}
