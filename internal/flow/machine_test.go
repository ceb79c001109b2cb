package flow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/bnlibri/libribot/core/telegram/state"
	"github.com/bnlibri/libribot/internal/domain"
	"github.com/bnlibri/libribot/internal/flow"
	"github.com/bnlibri/libribot/internal/service"
	"github.com/bnlibri/libribot/internal/storage"
)

const channelURL = "https://t.me/bnlibriinvendita"

type fakeChannel struct {
	nextID     int64
	published  []publishedPost
	retracted  []int64
	publishErr error
}

type publishedPost struct {
	text  string
	photo *string
}

func (f *fakeChannel) Publish(_ context.Context, text string, photo *string) (int64, error) {
	if f.publishErr != nil {
		return 0, f.publishErr
	}
	f.nextID++
	f.published = append(f.published, publishedPost{text: text, photo: photo})
	return f.nextID, nil
}

func (f *fakeChannel) Retract(_ context.Context, messageID int64) error {
	f.retracted = append(f.retracted, messageID)
	return nil
}

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	schema := `
	CREATE TABLE users(user_id INTEGER PRIMARY KEY, name TEXT, instagram TEXT, phone TEXT);
	CREATE TABLE books(code TEXT PRIMARY KEY, user_id INTEGER REFERENCES users(user_id),
	  message_id INTEGER, name TEXT, year TEXT, subject TEXT, condition TEXT,
	  isbn TEXT, price TEXT, photo TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func fixture(t *testing.T) (*flow.Machine, *storage.Store, *fakeChannel) {
	t.Helper()
	store := storage.New(memdb(t))
	ch := &fakeChannel{}
	m := flow.New(state.NewMemoryManager(), service.NewUsers(store),
		service.NewListings(store, ch), channelURL)
	return m, store, ch
}

func input(t *testing.T, m *flow.Machine, userID int64, text string) []flow.Prompt {
	t.Helper()
	prompts, err := m.Input(context.Background(), userID, text)
	if err != nil {
		t.Fatalf("input %q: %v", text, err)
	}
	return prompts
}

func act(t *testing.T, m *flow.Machine, userID int64, a flow.Action) []flow.Prompt {
	t.Helper()
	prompts, err := m.Act(context.Background(), userID, a)
	if err != nil {
		t.Fatalf("action %v: %v", a, err)
	}
	return prompts
}

func register(t *testing.T, m *flow.Machine, userID int64) {
	t.Helper()
	m.Start(context.Background(), userID)
	input(t, m, userID, "Ada Lovelace")
	input(t, m, userID, "@ada")
	input(t, m, userID, "333 1234567")
}

// startDraft walks a registered user to the confirmation screen with photo
// and price skipped.
func startDraft(t *testing.T, m *flow.Machine, userID int64) []flow.Prompt {
	t.Helper()
	act(t, m, userID, flow.Action{Kind: flow.ActStartListing})
	input(t, m, userID, "Algebra I")
	input(t, m, userID, "Secondo")
	input(t, m, userID, "#Matematica")
	input(t, m, userID, "Usato - Buono")
	input(t, m, userID, "123-456")
	input(t, m, userID, "No")
	return input(t, m, userID, "Salta")
}

func findButton(prompts []flow.Prompt, kind flow.ActionKind) (flow.Button, bool) {
	for _, p := range prompts {
		for _, row := range p.Inline {
			for _, btn := range row {
				if btn.Action.Kind == kind {
					return btn, true
				}
			}
		}
	}
	return flow.Button{}, false
}

func allText(prompts []flow.Prompt) string {
	parts := make([]string, 0, len(prompts))
	for _, p := range prompts {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

func TestRegistrationEndToEnd(t *testing.T) {
	m, store, _ := fixture(t)
	ctx := context.Background()

	prompts := m.Start(ctx, 42)
	if !strings.Contains(allText(prompts), "nome e cognome") {
		t.Fatalf("unknown user not asked to register: %s", allText(prompts))
	}

	input(t, m, 42, "Ada Lovelace")
	input(t, m, 42, "@ada")
	final := input(t, m, 42, "333 1234567")

	u, ok := store.GetUser(ctx, 42)
	if !ok {
		t.Fatal("profile not persisted")
	}
	if u.Name != "Ada Lovelace" || u.Instagram != "ada" || u.Phone != "3331234567" {
		t.Fatalf("normalization wrong: %+v", u)
	}
	if !strings.Contains(allText(final), "Cosa vuoi fare?") {
		t.Fatalf("home screen not shown after registration: %s", allText(final))
	}
	if m.InProgress(42) {
		t.Fatal("session still in progress after registration")
	}
}

func TestBadPhoneRepromptsKeepingFields(t *testing.T) {
	m, store, _ := fixture(t)
	m.Start(context.Background(), 42)
	input(t, m, 42, "Ada Lovelace")
	input(t, m, 42, "@ada")

	prompts := input(t, m, 42, "not-a-number")
	if !strings.Contains(allText(prompts), "solo cifre") {
		t.Fatalf("expected phone re-prompt, got: %s", allText(prompts))
	}

	input(t, m, 42, "3331234567")
	u, ok := store.GetUser(context.Background(), 42)
	if !ok || u.Name != "Ada Lovelace" || u.Instagram != "ada" {
		t.Fatalf("earlier fields lost on re-prompt: %+v", u)
	}
}

func TestListingEndToEnd(t *testing.T) {
	m, store, ch := fixture(t)
	ctx := context.Background()
	register(t, m, 42)

	summary := startDraft(t, m, 42)
	if _, ok := findButton(summary, flow.ActConfirm); !ok {
		t.Fatal("confirmation screen missing confirm button")
	}
	if !strings.Contains(allText(summary), "Algebra I") {
		t.Fatalf("summary missing book data: %s", allText(summary))
	}

	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})

	books := store.BooksByUser(ctx, 42)
	if len(books) != 1 {
		t.Fatalf("persisted %d listings", len(books))
	}
	b := books[0]
	if b.ISBN != "123456" {
		t.Fatalf("isbn = %q", b.ISBN)
	}
	if b.Price != nil {
		t.Fatalf("price = %v, want absent", *b.Price)
	}
	if len(b.Code) != domain.CodeLength {
		t.Fatalf("code = %q", b.Code)
	}
	if b.MessageID != 1 {
		t.Fatalf("message_id = %d, want the channel reference", b.MessageID)
	}
	if len(ch.published) != 1 {
		t.Fatalf("published %d times", len(ch.published))
	}
	if m.InProgress(42) {
		t.Fatal("session still in progress after confirmation")
	}
}

func TestCancelAtConfirmationPersistsNothing(t *testing.T) {
	m, store, ch := fixture(t)
	register(t, m, 42)
	startDraft(t, m, 42)

	prompts := act(t, m, 42, flow.Action{Kind: flow.ActCancel})
	if !strings.Contains(allText(prompts), "Cosa vuoi fare?") {
		t.Fatalf("cancel did not land home: %s", allText(prompts))
	}
	if got := store.BooksByUser(context.Background(), 42); len(got) != 0 {
		t.Fatalf("cancel persisted %d listings", len(got))
	}
	if len(ch.published) != 0 {
		t.Fatal("cancel published to the channel")
	}
}

func TestPublishFailureReturnsHome(t *testing.T) {
	m, store, ch := fixture(t)
	ctx := context.Background()
	register(t, m, 42)
	startDraft(t, m, 42)

	ch.publishErr = errors.New("channel unreachable")
	prompts, err := m.Act(ctx, 42, flow.Action{Kind: flow.ActConfirm})
	if err == nil {
		t.Fatal("publish error not propagated")
	}
	text := allText(prompts)
	if !strings.Contains(text, "Non sono riuscito a pubblicare") {
		t.Fatalf("no failure message: %s", text)
	}
	if !strings.Contains(text, "Cosa vuoi fare?") {
		t.Fatalf("home screen not re-shown: %s", text)
	}
	// Home actions stay reachable: the failure must not strand the user.
	if _, ok := findButton(prompts, flow.ActStartListing); !ok {
		t.Fatalf("no actionable buttons after failure: %s", text)
	}
	if m.InProgress(42) {
		t.Fatal("session stuck after failed publish")
	}
	if got := store.BooksByUser(ctx, 42); len(got) != 0 {
		t.Fatalf("persisted %d rows after failed publish", len(got))
	}
}

func TestInvalidEnumRepromptsKeepingDraft(t *testing.T) {
	m, store, _ := fixture(t)
	register(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	input(t, m, 42, "Algebra I")

	prompts := input(t, m, 42, "Sesto")
	if !strings.Contains(allText(prompts), "annualità valida") {
		t.Fatalf("expected year re-prompt, got: %s", allText(prompts))
	}

	// The captured name survives the re-prompt.
	input(t, m, 42, "Secondo")
	input(t, m, 42, "#Matematica")
	input(t, m, 42, "Usato - Buono")
	input(t, m, 42, "123456")
	input(t, m, 42, "No")
	summary := input(t, m, 42, "Salta")
	if !strings.Contains(allText(summary), "Algebra I") {
		t.Fatalf("draft name lost after invalid year: %s", allText(summary))
	}
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})

	if got := store.BooksByUser(context.Background(), 42); len(got) != 1 || got[0].Year != "Secondo" {
		t.Fatalf("listing wrong after re-prompt: %+v", got)
	}
}

func TestCustomSubject(t *testing.T) {
	m, store, _ := fixture(t)
	register(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	input(t, m, 42, "Greco antico")
	input(t, m, 42, "Quinto")

	prompts := input(t, m, 42, "#Altro")
	if !strings.Contains(allText(prompts), "manualmente") {
		t.Fatalf("expected free-form subject prompt: %s", allText(prompts))
	}
	input(t, m, 42, "Lingue classiche")
	input(t, m, 42, "Nuovo")
	input(t, m, 42, "999")
	input(t, m, 42, "No")
	input(t, m, 42, "Salta")
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})

	books := store.BooksByUser(context.Background(), 42)
	if len(books) != 1 || books[0].Subject != "Lingue classiche" {
		t.Fatalf("custom subject not stored: %+v", books)
	}
}

func TestPhotoFlowPublishesWithPhoto(t *testing.T) {
	m, _, ch := fixture(t)
	ctx := context.Background()
	register(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	input(t, m, 42, "Fisica 2")
	input(t, m, 42, "Quarto")
	input(t, m, 42, "#Fisica")
	input(t, m, 42, "Come Nuovo")
	input(t, m, 42, "555")
	input(t, m, 42, "Sì")

	prompts, err := m.Photo(ctx, 42, "file-abc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(allText(prompts), "prezzo") {
		t.Fatalf("photo did not advance to price: %s", allText(prompts))
	}
	input(t, m, 42, "10€")
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})

	if len(ch.published) != 1 {
		t.Fatalf("published %d times", len(ch.published))
	}
	if p := ch.published[0].photo; p == nil || *p != "file-abc" {
		t.Fatalf("photo reference not published: %v", p)
	}
}

func TestHomeActionsRequireRegistration(t *testing.T) {
	m, _, _ := fixture(t)
	prompts := act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	text := allText(prompts)
	if !strings.Contains(text, "completa le tue informazioni") || !strings.Contains(text, "nome e cognome") {
		t.Fatalf("guard did not redirect to registration: %s", text)
	}
	if !m.InProgress(42) {
		t.Fatal("guard did not open the registration step")
	}
}

func TestDeleteEndToEnd(t *testing.T) {
	m, store, ch := fixture(t)
	ctx := context.Background()
	register(t, m, 42)
	startDraft(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})
	code := store.BooksByUser(ctx, 42)[0].Code

	view := act(t, m, 42, flow.Action{Kind: flow.ActViewListings})
	btn, ok := findButton(view, flow.ActDeleteSelect)
	if !ok {
		t.Fatalf("no delete-select button in: %s", allText(view))
	}
	if btn.Action.Code != code {
		t.Fatalf("button carries code %q, want %q", btn.Action.Code, code)
	}

	confirm := act(t, m, 42, btn.Action)
	if !strings.Contains(allText(confirm), "Sei sicuro di voler eliminare l'annuncio per il libro *Algebra I*") {
		t.Fatalf("confirmation does not name the book: %s", allText(confirm))
	}
	delBtn, ok := findButton(confirm, flow.ActDeleteConfirm)
	if !ok {
		t.Fatalf("no delete-confirm button in: %s", allText(confirm))
	}

	done := act(t, m, 42, delBtn.Action)
	if !strings.Contains(allText(done), "eliminato") {
		t.Fatalf("no success message: %s", allText(done))
	}
	if len(ch.retracted) != 1 {
		t.Fatalf("retracted %d times", len(ch.retracted))
	}
	if got := store.BooksByUser(ctx, 42); len(got) != 0 {
		t.Fatal("row survived delete")
	}
}

func TestDeleteForeignListingDenied(t *testing.T) {
	m, store, ch := fixture(t)
	ctx := context.Background()
	register(t, m, 42)
	startDraft(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})
	code := store.BooksByUser(ctx, 42)[0].Code

	register(t, m, 77)
	prompts := act(t, m, 77, flow.Action{Kind: flow.ActDeleteSelect, Code: code})
	if !strings.Contains(allText(prompts), "non hai il permesso") {
		t.Fatalf("foreign delete not denied: %s", allText(prompts))
	}
	if len(ch.retracted) != 0 {
		t.Fatal("foreign delete retracted from channel")
	}
	if got := store.BooksByUser(ctx, 42); len(got) != 1 {
		t.Fatal("foreign delete removed the listing")
	}
}

func TestViewListingsEmpty(t *testing.T) {
	m, _, _ := fixture(t)
	register(t, m, 42)
	prompts := act(t, m, 42, flow.Action{Kind: flow.ActViewListings})
	if !strings.Contains(allText(prompts), "Non hai nessun annuncio") {
		t.Fatalf("empty overview wrong: %s", allText(prompts))
	}
}

func TestSearchISBN(t *testing.T) {
	m, _, _ := fixture(t)
	register(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	input(t, m, 42, "Informatica")
	input(t, m, 42, "Quinto")
	input(t, m, 42, "#Tecnologia")
	input(t, m, 42, "Nuovo")
	input(t, m, 42, "978 0 13 468599 1")
	input(t, m, 42, "No")
	input(t, m, 42, "Salta")
	act(t, m, 42, flow.Action{Kind: flow.ActConfirm})

	act(t, m, 42, flow.Action{Kind: flow.ActSearchISBN})
	hit := input(t, m, 42, "978-0-13-468599-1")
	if !strings.Contains(allText(hit), "in vendita nel canale") {
		t.Fatalf("search hit wrong: %s", allText(hit))
	}
	if !strings.Contains(allText(hit), channelURL) {
		t.Fatalf("hit missing channel link: %s", allText(hit))
	}

	act(t, m, 42, flow.Action{Kind: flow.ActSearchISBN})
	miss := input(t, m, 42, "000000")
	if !strings.Contains(allText(miss), "non è in vendita") {
		t.Fatalf("search miss wrong: %s", allText(miss))
	}
	if m.InProgress(42) {
		t.Fatal("search left the session in progress")
	}
}

func TestDoneDropsConversation(t *testing.T) {
	m, store, ch := fixture(t)
	register(t, m, 42)
	act(t, m, 42, flow.Action{Kind: flow.ActStartListing})
	input(t, m, 42, "Storia 3")

	prompts := m.Done(context.Background(), 42)
	if !strings.Contains(allText(prompts), "terminata") {
		t.Fatalf("done message missing: %s", allText(prompts))
	}
	if m.InProgress(42) {
		t.Fatal("done left the session in progress")
	}
	if len(ch.published) != 0 {
		t.Fatal("done published a partial draft")
	}
	if got := store.BooksByUser(context.Background(), 42); len(got) != 0 {
		t.Fatal("done persisted a partial draft")
	}
}
