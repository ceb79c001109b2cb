// Package render builds the Markdown texts shown to sellers and published to
// the channel. Field order is fixed so listings look uniform.
package render

import (
	"fmt"
	"strings"

	"github.com/bnlibri/libribot/core/telegram/format"
	"github.com/bnlibri/libribot/internal/domain"
)

// PriceMissing is shown when the seller skipped the price step.
const PriceMissing = "Non fornito"

// BookCard renders a listing the way it appears in the channel, with the
// seller's contact links at the bottom.
func BookCard(b domain.Book, seller domain.User) string {
	telegram := fmt.Sprintf("tg://user?id=%d", seller.ID)
	whatsapp := fmt.Sprintf("https://wa.me/+39%s", seller.Phone)
	instagram := fmt.Sprintf("https://instagram.com/%s", seller.Instagram)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 **Nome del libro:** *%s*\n", b.Name)
	fmt.Fprintf(&sb, "📅 **Anno:** %s\n", b.Year)
	fmt.Fprintf(&sb, "📚 **Materia:** %s\n", b.Subject)
	fmt.Fprintf(&sb, "📋 **Condizione:** %s\n", b.Condition)
	fmt.Fprintf(&sb, "🔢 **ISBN:** `%s`\n", b.ISBN)
	fmt.Fprintf(&sb, "💵 **Prezzo:** %s\n", format.DerefString(b.Price, PriceMissing))
	fmt.Fprintf(&sb, "👤 **Venditore:** %s\n", seller.Name)
	fmt.Fprintf(&sb, "📩 [Contatta il venditore su Telegram](%s)\n", telegram)
	fmt.Fprintf(&sb, "📩 [Contatta su WhatsApp](%s)\n", whatsapp)
	fmt.Fprintf(&sb, "📩 Instagram: [%s](%s)", seller.Instagram, instagram)
	return sb.String()
}

// DraftSummary renders the recap shown before the seller confirms a draft.
// The card body is identical to what will be published.
func DraftSummary(d domain.Draft, seller domain.User) string {
	return "📋 *Ecco un riepilogo del tuo annuncio:*\n\n" + BookCard(d.Book(seller.ID, 0), seller)
}

// ListingLine renders one row of the seller's own listings overview. The
// title is escaped so it cannot break the surrounding Markdown.
func ListingLine(b domain.Book) string {
	return fmt.Sprintf("📖 *%s* (%s, %s)\nCodice: `%s`",
		format.EscapeMarkdown(b.Name), b.Year, b.Subject, b.Code)
}

// Listings renders the seller's full overview, one block per listing.
func Listings(books []domain.Book) string {
	lines := make([]string, 0, len(books))
	for _, b := range books {
		lines = append(lines, ListingLine(b))
	}
	return strings.Join(lines, "\n\n")
}

// SearchResults renders the outcome of an ISBN search for a buyer.
func SearchResults(isbn string, books []domain.Book, sellers map[int64]domain.User) string {
	if len(books) == 0 {
		return fmt.Sprintf("Nessun annuncio trovato per l'ISBN `%s`.", isbn)
	}
	blocks := make([]string, 0, len(books))
	for _, b := range books {
		blocks = append(blocks, BookCard(b, sellers[b.UserID]))
	}
	return strings.Join(blocks, "\n\n- - - - -\n\n")
}

// Profile renders the seller's stored contact data, shown before an edit.
func Profile(u domain.User) string {
	return fmt.Sprintf("👤 *Dati di contatto attuali:*\n\n📛 *Nome:* %s\n📸 *Instagram:* %s\n📞 *Telefono:* %s",
		u.Name, u.Instagram, u.Phone)
}
