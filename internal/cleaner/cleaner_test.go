package cleaner

import "testing"

func TestClean_WhitespaceNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapse spaces", "the  UE   shall", "the UE shall"},
		{"tabs", "the\tUE\tshall", "the UE shall"},
		{"nbsp", "the UE shall", "the UE shall"},
		{"newlines", "the UE\nshall send", "the UE shall send"},
		{"leading and trailing", "  the UE shall  ", "the UE shall"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_PunctuationStripping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing period", "the UE shall send.", "the UE shall send"},
		{"comma before space", "first, second", "first second"},
		{"question mark", "is it valid? yes", "is it valid yes"},
		{"colon", "as follows: a b", "as follows a b"},
		{"exclamation", "stop! now", "stop now"},
		{"mid-word punctuation kept", "S-NSSAI(s) value", "S-NSSAI(s) value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_PreservesDottedNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"section number", "see clause 5.5.1.2 for details", "see clause 5.5.1.2 for details"},
		{"two-part version", "release 15.2 applies", "release 15.2 applies"},
		{"number at end", "as specified in 24.501", "as specified in 24.501"},
		{"number then period", "defined in 5.5.1. Next sentence", "defined in 5.5.1 Next sentence"},
		{"multiple numbers", "see 5.5.1.2 and 5.5.1.3", "see 5.5.1.2 and 5.5.1.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"the UE shall send a REGISTRATION REQUEST message.",
		"see clause 5.5.1.2 for the procedure",
		"first, second, and third",
		"  spaced\tout text  ",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestClean_StripsOneTrailingMarkPerPass(t *testing.T) {
	// Each pass removes exactly one trailing punctuation mark, so stacked
	// punctuation converges over repeated passes rather than in one.
	tests := []struct {
		input string
		once  string
		twice string
	}{
		{"the UE shall send..", "the UE shall send.", "the UE shall send"},
		{"really?!", "really?", "really"},
		{"wait...", "wait..", "wait."},
	}
	for _, tt := range tests {
		got := Clean(tt.input)
		if got != tt.once {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.once)
		}
		if got = Clean(got); got != tt.twice {
			t.Errorf("Clean(Clean(%q)) = %q, want %q", tt.input, got, tt.twice)
		}
	}
}

func TestCleanFold_LowercasesPlainWords(t *testing.T) {
	got := CleanFold("The UE Shall Send")
	want := "the UE shall send"
	if got != want {
		t.Errorf("CleanFold = %q, want %q", got, want)
	}
}

func TestCleanFold_KeepsTechnicalTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"acronym", "the NSSAI value", "the NSSAI value"},
		{"digit token", "the 5G system", "the 5G system"},
		{"hyphenated", "an S-NSSAI entry", "an S-NSSAI entry"},
		{"single capital folds", "The procedure", "the procedure"},
		{"two capitals kept", "the UE registers", "the UE registers"},
		{"section number", "clause 5.5.1.2 applies", "clause 5.5.1.2 applies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFold(tt.input); got != tt.want {
				t.Errorf("CleanFold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsTechnicalToken(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"NSSAI", true},
		{"5G", true},
		{"UE", true},
		{"S-NSSAI(s)", true},
		{"The", false},
		{"procedure", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTechnicalToken(tt.word); got != tt.want {
			t.Errorf("isTechnicalToken(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
