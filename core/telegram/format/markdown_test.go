package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	got := EscapeMarkdown("Algebra *I* [vol_2]")
	want := `Algebra \*I\* \[vol\_2]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeMarkdownBacktick(t *testing.T) {
	got := EscapeMarkdown("isbn `123`")
	want := "isbn \\`123\\`"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDerefString(t *testing.T) {
	v := "15"
	if got := DerefString(&v, "Non fornito"); got != "15" {
		t.Fatalf("got %q", got)
	}
	if got := DerefString(nil, "Non fornito"); got != "Non fornito" {
		t.Fatalf("got %q", got)
	}
}
