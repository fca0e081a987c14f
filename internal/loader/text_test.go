package loader

import (
	"strings"
	"testing"
)

func TestTextLoader_ParagraphGrouping(t *testing.T) {
	input := `5 Security

The UE shall apply integrity protection.
It spans two lines.

5.1 General

General text here.`

	l := &TextLoader{}
	records, err := l.Load(strings.NewReader(input), "spec.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d: %+v", len(records), records)
	}

	if records[0].Level != 1 || records[0].Text != "5 Security" {
		t.Errorf("expected level-1 heading %q, got level %d %q", "5 Security", records[0].Level, records[0].Text)
	}
	if records[1].Level != 0 {
		t.Errorf("expected body record, got level %d", records[1].Level)
	}
	if !strings.Contains(records[1].Text, "It spans two lines") {
		t.Errorf("expected multi-line paragraph joined, got %q", records[1].Text)
	}
	if records[2].Level != 2 || records[2].Text != "5.1 General" {
		t.Errorf("expected level-2 heading %q, got level %d %q", "5.1 General", records[2].Level, records[2].Text)
	}
	if records[2].StyleName != "Heading 2" {
		t.Errorf("expected style %q, got %q", "Heading 2", records[2].StyleName)
	}
}

func TestTextLoader_EmptyInput(t *testing.T) {
	l := &TextLoader{}
	records, err := l.Load(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records for empty input, got %d", len(records))
	}
}

func TestTextLoader_CleansParagraphText(t *testing.T) {
	input := "The  UE   shall\tsend a message.\n"
	l := &TextLoader{}
	records, err := l.Load(strings.NewReader(input), "spec.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := "The UE shall send a message"
	if records[0].Text != want {
		t.Errorf("expected cleaned text %q, got %q", want, records[0].Text)
	}
}

func TestTextLoader_MultilineParagraphNeverHeading(t *testing.T) {
	input := "5.5 Procedures\ncontinued on next line\n"
	l := &TextLoader{}
	records, err := l.Load(strings.NewReader(input), "spec.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Level != 0 {
		t.Errorf("multi-line paragraph should be body text, got level %d", records[0].Level)
	}
}
