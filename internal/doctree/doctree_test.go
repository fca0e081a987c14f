package doctree

import "testing"

func TestSection_IDAndName(t *testing.T) {
	tests := []struct {
		heading  string
		wantID   string
		wantName string
	}{
		{"5.5.1.2 Registration procedure", "5.5.1.2", "Registration procedure"},
		{"1 Scope", "1", "Scope"},
		{"10.2 General description", "10.2", "General description"},
		{"Preamble", "Preamble", "Preamble"},
		{"Annex A", "Annex A", "Annex A"},
	}
	for _, tt := range tests {
		sec := &Section{Heading: tt.heading}
		if got := sec.ID(); got != tt.wantID {
			t.Errorf("ID(%q) = %q, want %q", tt.heading, got, tt.wantID)
		}
		if got := sec.Name(); got != tt.wantName {
			t.Errorf("Name(%q) = %q, want %q", tt.heading, got, tt.wantName)
		}
	}
}

func TestSection_JoinedContent(t *testing.T) {
	sec := &Section{Content: []string{"first paragraph", "second paragraph"}}
	want := "first paragraph second paragraph"
	if got := sec.JoinedContent(); got != want {
		t.Errorf("JoinedContent = %q, want %q", got, want)
	}

	empty := &Section{}
	if got := empty.JoinedContent(); got != "" {
		t.Errorf("JoinedContent on empty section = %q, want empty", got)
	}
}

func TestWalk_DepthFirstDocumentOrder(t *testing.T) {
	//  1
	//    1.1
	//      1.1.1
	//    1.2
	//  2
	s111 := &Section{Level: 3, Heading: "1.1.1 Deep"}
	s11 := &Section{Level: 2, Heading: "1.1 First child", Subsections: []*Section{s111}}
	s12 := &Section{Level: 2, Heading: "1.2 Second child"}
	s1 := &Section{Level: 1, Heading: "1 Root", Subsections: []*Section{s11, s12}}
	s2 := &Section{Level: 1, Heading: "2 Sibling"}

	var order []string
	Walk([]*Section{s1, s2}, func(s *Section) {
		order = append(order, s.ID())
	})

	want := []string{"1", "1.1", "1.1.1", "1.2", "2"}
	if len(order) != len(want) {
		t.Fatalf("expected %d sections visited, got %d (%v)", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestParagraphRecord_IsHeading(t *testing.T) {
	if (ParagraphRecord{Level: 0}).IsHeading() {
		t.Error("level 0 record should not be a heading")
	}
	if !(ParagraphRecord{Level: 1}).IsHeading() {
		t.Error("level 1 record should be a heading")
	}
}
