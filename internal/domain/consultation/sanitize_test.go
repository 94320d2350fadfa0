package consultation

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "BP 120/80, temp normal", "BP 120/80, temp normal"},
		{"script block removed", "before<script>alert(1)</script>after", "beforeafter"},
		{"script block case insensitive", "<SCRIPT src=x>bad</SCRIPT>ok", "ok"},
		{"style block removed", "<style>body{}</style>text", "text"},
		{"tags stripped, text kept", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"event handler removed", `click onclick=doEvil() here`, "click doEvil() here"},
		{"javascript scheme removed", "see javascript:alert(1)", "see alert(1)"},
		{"multiline script", "a<script>\nline1\nline2\n</script>b", "ab"},
		{"comparison operators survive", "dose < 5mg if temp > 38", "dose < 5mg if temp > 38"},
		{"trims whitespace", "  note  ", "note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNote_Sanitize(t *testing.T) {
	dirty := "<script>x</script>finding"
	n := &Note{
		ReasonForVisit: "<b>visit</b>",
		Subjective:     &dirty,
	}
	n.Sanitize()
	if n.ReasonForVisit != "visit" {
		t.Errorf("reason = %q", n.ReasonForVisit)
	}
	if *n.Subjective != "finding" {
		t.Errorf("subjective = %q", *n.Subjective)
	}
}
