package render_test

import (
	"strings"
	"testing"

	"github.com/bnlibri/libribot/internal/domain"
	"github.com/bnlibri/libribot/internal/render"
)

var seller = domain.User{ID: 42, Name: "Ada Lovelace", Instagram: "ada_lovelace", Phone: "3331234567"}

func TestBookCardFieldOrderAndLinks(t *testing.T) {
	price := "15€"
	b := domain.Book{
		Code: "AAAA1111", UserID: 42, Name: "Algebra I", Year: "Secondo",
		Subject: "#Matematica", Condition: "Usato - Buono", ISBN: "9780134685991", Price: &price,
	}
	card := render.BookCard(b, seller)

	order := []string{
		"Nome del libro:", "Algebra I",
		"Anno:", "Secondo",
		"Materia:", "#Matematica",
		"Condizione:", "Usato - Buono",
		"ISBN:", "9780134685991",
		"Prezzo:", "15€",
		"Venditore:", "Ada Lovelace",
		"tg://user?id=42",
		"https://wa.me/+393331234567",
		"https://instagram.com/ada_lovelace",
	}
	idx := 0
	for _, want := range order {
		pos := strings.Index(card[idx:], want)
		if pos < 0 {
			t.Fatalf("missing or out of order: %q\ncard:\n%s", want, card)
		}
		idx += pos
	}
}

func TestBookCardMissingPrice(t *testing.T) {
	b := domain.Book{Code: "AAAA1111", UserID: 42, Name: "Fisica", Year: "Terzo",
		Subject: "#Fisica", Condition: "Nuovo", ISBN: "111"}
	card := render.BookCard(b, seller)
	if !strings.Contains(card, "Prezzo:** "+render.PriceMissing) {
		t.Fatalf("missing price placeholder:\n%s", card)
	}
}

func TestDraftSummaryMatchesPublishedCard(t *testing.T) {
	d := domain.Draft{Code: "AAAA1111", Name: "Go", Year: "Quinto",
		Subject: "#Tecnologia", Condition: "Come Nuovo", ISBN: "222"}
	summary := render.DraftSummary(d, seller)
	card := render.BookCard(d.Book(seller.ID, 0), seller)
	if !strings.HasSuffix(summary, card) {
		t.Fatal("summary body differs from published card")
	}
}

func TestListings(t *testing.T) {
	books := []domain.Book{
		{Code: "AAAA1111", Name: "Uno", Year: "Primo", Subject: "#Storia"},
		{Code: "BBBB2222", Name: "Due", Year: "Secondo", Subject: "#Latino"},
	}
	out := render.Listings(books)
	for _, code := range []string{"AAAA1111", "BBBB2222"} {
		if !strings.Contains(out, code) {
			t.Fatalf("missing code %s in:\n%s", code, out)
		}
	}
}

func TestSearchResultsEmpty(t *testing.T) {
	out := render.SearchResults("123", nil, nil)
	if !strings.Contains(out, "Nessun annuncio") || !strings.Contains(out, "123") {
		t.Fatalf("unexpected empty result text: %s", out)
	}
}
