package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnlibri/libribot/core/logger"
	"github.com/bnlibri/libribot/core/telegram/format"
	"github.com/bnlibri/libribot/core/telegram/state"
	"github.com/bnlibri/libribot/internal/domain"
	"github.com/bnlibri/libribot/internal/render"
	"github.com/bnlibri/libribot/internal/service"
)

// Conversation states. Idle doubles as the home screen: actions dispatch from
// it, free text does not.
const (
	stAwaitName          state.State = "awaiting_name"
	stAwaitInstagram     state.State = "awaiting_instagram"
	stAwaitPhone         state.State = "awaiting_phone"
	stAwaitBookName      state.State = "awaiting_book_name"
	stAwaitYear          state.State = "awaiting_year"
	stAwaitSubject       state.State = "awaiting_subject"
	stAwaitCustomSubject state.State = "awaiting_custom_subject"
	stAwaitCondition     state.State = "awaiting_condition"
	stAwaitISBN          state.State = "awaiting_isbn"
	stAwaitPhotoChoice   state.State = "awaiting_photo_choice"
	stAwaitPhoto         state.State = "awaiting_photo"
	stAwaitPrice         state.State = "awaiting_price"
	stAwaitConfirmation  state.State = "awaiting_confirmation"
	stAwaitDeleteSelect  state.State = "awaiting_delete_select"
	stAwaitDeleteConfirm state.State = "awaiting_delete_confirmation"
	stAwaitISBNQuery     state.State = "awaiting_isbn_query"
)

// Temp keys used inside the session.
const (
	tempDraft     = "draft"
	tempRegName   = "reg_name"
	tempRegHandle = "reg_instagram"
)

// Machine drives one user's conversation. All methods are safe for
// concurrent use across users because sessions are keyed per user.
type Machine struct {
	sessions   state.Manager
	users      *service.Users
	listings   *service.Listings
	channelURL string
}

// New returns a conversation machine. channelURL is the public link to the
// sales channel shown on the home screen and in search results.
func New(sessions state.Manager, users *service.Users, listings *service.Listings, channelURL string) *Machine {
	return &Machine{sessions: sessions, users: users, listings: listings, channelURL: channelURL}
}

// InProgress reports whether the user is mid-conversation, which routes
// their free text and photos here instead of the command dispatcher.
func (m *Machine) InProgress(userID int64) bool {
	return m.sessions.InProgress(userID)
}

// Start handles the entry command. Registered users land on the home screen,
// unknown users are sent into registration.
func (m *Machine) Start(ctx context.Context, userID int64) []Prompt {
	if _, ok := m.users.Get(ctx, userID); !ok {
		m.sessions.Clear(userID)
		m.sessions.SetState(userID, stAwaitName)
		return []Prompt{textPrompt(msgAskName)}
	}
	m.sessions.Clear(userID)
	return []Prompt{m.homepage(ctx, userID)}
}

// Done handles the exit command: whatever was in progress is dropped and the
// home screen is shown again.
func (m *Machine) Done(ctx context.Context, userID int64) []Prompt {
	m.sessions.Clear(userID)
	return []Prompt{
		{Text: msgDone, RemoveReply: true},
		m.homepage(ctx, userID),
	}
}

// Input advances the conversation with a free-text message. Enumerated steps
// re-prompt on anything that is not an exact menu match, keeping the fields
// captured so far.
func (m *Machine) Input(ctx context.Context, userID int64, text string) ([]Prompt, error) {
	text = strings.TrimSpace(text)
	switch m.sessions.GetState(userID) {
	case stAwaitName:
		m.sessions.SetTemp(userID, tempRegName, text)
		m.sessions.SetState(userID, stAwaitInstagram)
		return []Prompt{textPrompt(msgAskInstagram)}, nil

	case stAwaitInstagram:
		m.sessions.SetTemp(userID, tempRegHandle, domain.NormalizeHandle(text))
		m.sessions.SetState(userID, stAwaitPhone)
		return []Prompt{textPrompt(msgAskPhone)}, nil

	case stAwaitPhone:
		phone, ok := domain.NormalizePhone(text)
		if !ok {
			return []Prompt{textPrompt(msgBadPhone)}, nil
		}
		u := domain.User{
			ID:        userID,
			Name:      m.tempString(userID, tempRegName),
			Instagram: m.tempString(userID, tempRegHandle),
			Phone:     phone,
		}
		if err := m.users.SaveProfile(ctx, u); err != nil {
			return []Prompt{textPrompt(msgSaveFailed)}, err
		}
		m.sessions.Clear(userID)
		return []Prompt{textPrompt(msgProfileSaved), m.homepage(ctx, userID)}, nil

	case stAwaitBookName:
		m.saveDraft(userID, domain.Draft{Name: text})
		m.sessions.SetState(userID, stAwaitYear)
		return []Prompt{choicePrompt(msgAskYear, yearRows)}, nil

	case stAwaitYear:
		if !domain.ValidYear(text) {
			return []Prompt{cancellablePrompt(msgBadYear)}, nil
		}
		d := m.draft(userID)
		d.Year = text
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitSubject)
		return []Prompt{choicePrompt(msgAskSubject, subjectRows)}, nil

	case stAwaitSubject:
		if text == domain.SubjectOther {
			m.sessions.SetState(userID, stAwaitCustomSubject)
			return []Prompt{cancellablePrompt(msgAskFreeSubject)}, nil
		}
		if !domain.ValidSubject(text) {
			return []Prompt{cancellablePrompt(msgBadSubject)}, nil
		}
		d := m.draft(userID)
		d.Subject = text
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitCondition)
		return []Prompt{choicePrompt(msgAskCondition, conditionRows)}, nil

	case stAwaitCustomSubject:
		d := m.draft(userID)
		d.Subject = text
		d.CustomSubject = true
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitCondition)
		return []Prompt{choicePrompt(msgAskCondition, conditionRows)}, nil

	case stAwaitCondition:
		if !domain.ValidCondition(text) {
			return []Prompt{cancellablePrompt(msgBadCondition)}, nil
		}
		d := m.draft(userID)
		d.Condition = text
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitISBN)
		return []Prompt{cancellablePrompt(msgAskISBN)}, nil

	case stAwaitISBN:
		d := m.draft(userID)
		d.ISBN = domain.NormalizeISBN(text)
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitPhotoChoice)
		return []Prompt{choicePrompt(msgAskPhotoChoice, photoChoiceRows)}, nil

	case stAwaitPhotoChoice:
		if strings.EqualFold(text, photoChoiceYes) {
			m.sessions.SetState(userID, stAwaitPhoto)
			return []Prompt{cancellablePrompt(msgAskPhoto)}, nil
		}
		d := m.draft(userID)
		d.Photo = nil
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitPrice)
		return []Prompt{choicePrompt(msgAskPrice, priceRows)}, nil

	case stAwaitPhoto:
		// Text while a photo is expected: ask again.
		return []Prompt{cancellablePrompt(msgAskPhoto)}, nil

	case stAwaitPrice:
		d := m.draft(userID)
		if strings.EqualFold(text, priceSkip) {
			d.Price = nil
		} else {
			price := text
			d.Price = &price
		}
		d.Code = domain.NewListingCode()
		m.saveDraft(userID, d)
		m.sessions.SetState(userID, stAwaitConfirmation)
		return []Prompt{m.summary(ctx, userID, d)}, nil

	case stAwaitISBNQuery:
		return m.search(ctx, userID, text)
	}
	return nil, nil
}

// Photo advances the conversation with a media reference. Photos outside the
// photo step are ignored.
func (m *Machine) Photo(ctx context.Context, userID int64, fileID string) ([]Prompt, error) {
	if m.sessions.GetState(userID) != stAwaitPhoto {
		return nil, nil
	}
	d := m.draft(userID)
	d.Photo = &fileID
	m.saveDraft(userID, d)
	m.sessions.SetState(userID, stAwaitPrice)
	return []Prompt{choicePrompt(msgAskPrice, priceRows)}, nil
}

// Act dispatches a decoded button press.
func (m *Machine) Act(ctx context.Context, userID int64, a Action) ([]Prompt, error) {
	switch a.Kind {
	case ActCancel:
		m.sessions.Clear(userID)
		return []Prompt{m.homepage(ctx, userID)}, nil

	case ActContactEdit:
		seller, ok := m.users.Get(ctx, userID)
		if !ok {
			return m.redirectToRegistration(userID), nil
		}
		m.sessions.SetState(userID, stAwaitName)
		return []Prompt{cancellablePrompt(render.Profile(seller) + "\n\n" + msgAskNewName)}, nil

	case ActStartListing:
		if _, ok := m.users.Get(ctx, userID); !ok {
			return m.redirectToRegistration(userID), nil
		}
		m.sessions.SetState(userID, stAwaitBookName)
		return []Prompt{cancellablePrompt(msgAskBookName)}, nil

	case ActViewListings:
		if _, ok := m.users.Get(ctx, userID); !ok {
			return m.redirectToRegistration(userID), nil
		}
		books := m.listings.Owned(ctx, userID)
		if len(books) == 0 {
			return []Prompt{textPrompt(msgNoListings), m.homepage(ctx, userID)}, nil
		}
		rows := make([][]Button, 0, len(books)+1)
		for _, b := range books {
			rows = append(rows, []Button{{
				Label:  b.Name,
				Action: Action{Kind: ActDeleteSelect, Code: b.Code},
			}})
		}
		rows = append(rows, cancelRow())
		m.sessions.SetState(userID, stAwaitDeleteSelect)
		return []Prompt{{
			Text:   msgPickToDelete + "\n\n" + render.Listings(books),
			Inline: rows,
		}}, nil

	case ActSearchISBN:
		if _, ok := m.users.Get(ctx, userID); !ok {
			return m.redirectToRegistration(userID), nil
		}
		m.sessions.SetState(userID, stAwaitISBNQuery)
		return []Prompt{cancellablePrompt(msgAskSearchISBN)}, nil

	case ActConfirm:
		return m.confirm(ctx, userID)

	case ActDeleteSelect:
		book, err := m.listings.Lookup(ctx, userID, a.Code)
		if err != nil {
			m.sessions.Clear(userID)
			return []Prompt{textPrompt(msgDeleteDenied), m.homepage(ctx, userID)}, nil
		}
		m.sessions.SetState(userID, stAwaitDeleteConfirm)
		return []Prompt{{
			Text: fmt.Sprintf(msgConfirmDelete, format.EscapeMarkdown(book.Name)),
			Inline: [][]Button{
				{{Label: msgBtnDelete, Action: Action{Kind: ActDeleteConfirm, Code: a.Code}}},
				cancelRow(),
			},
		}}, nil

	case ActDeleteConfirm:
		return m.deleteConfirmed(ctx, userID, a.Code)
	}
	return nil, fmt.Errorf("unknown action kind %d", a.Kind)
}

func (m *Machine) confirm(ctx context.Context, userID int64) ([]Prompt, error) {
	if m.sessions.GetState(userID) != stAwaitConfirmation {
		m.sessions.Clear(userID)
		return []Prompt{m.homepage(ctx, userID)}, nil
	}
	seller, ok := m.users.Get(ctx, userID)
	if !ok {
		return m.redirectToRegistration(userID), nil
	}
	book, err := m.listings.Create(ctx, seller, m.draft(userID))
	if err != nil {
		// Nothing was persisted; drop the draft and land back home so the
		// user is never left without buttons.
		m.sessions.Clear(userID)
		return []Prompt{textPrompt(msgPublishFailed), m.homepage(ctx, userID)}, err
	}
	logger.Info(ctx, "service.listings", "flow.listing_confirmed",
		slog.String("code", book.Code),
		slog.Int64("user_id", userID))
	m.sessions.Clear(userID)
	return []Prompt{textPrompt(msgConfirmed), m.homepage(ctx, userID)}, nil
}

func (m *Machine) deleteConfirmed(ctx context.Context, userID int64, code string) ([]Prompt, error) {
	err := m.listings.Delete(ctx, userID, code)
	switch {
	case err == nil:
		m.sessions.Clear(userID)
		return []Prompt{textPrompt(msgDeleted), m.homepage(ctx, userID)}, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotOwner):
		m.sessions.Clear(userID)
		return []Prompt{textPrompt(msgDeleteDenied), m.homepage(ctx, userID)}, nil
	default:
		// Retraction failed, the listing is still live and stored.
		m.sessions.Clear(userID)
		return []Prompt{textPrompt(msgDeleteFailed), m.homepage(ctx, userID)}, err
	}
}

func (m *Machine) search(ctx context.Context, userID int64, raw string) ([]Prompt, error) {
	_, books, sellers := m.listings.SearchISBN(ctx, raw)
	m.sessions.Clear(userID)
	if len(books) == 0 {
		return []Prompt{textPrompt(msgSearchMiss), m.homepage(ctx, userID)}, nil
	}
	return []Prompt{
		textPrompt(fmt.Sprintf(msgSearchHit, m.channelURL)),
		textPrompt(render.SearchResults(domain.NormalizeISBN(raw), books, sellers)),
		m.homepage(ctx, userID),
	}, nil
}

// redirectToRegistration enforces the registration guard on home actions.
func (m *Machine) redirectToRegistration(userID int64) []Prompt {
	m.sessions.Clear(userID)
	m.sessions.SetState(userID, stAwaitName)
	return []Prompt{textPrompt(msgRegisterFirst), textPrompt(msgAskName)}
}

func (m *Machine) homepage(ctx context.Context, userID int64) Prompt {
	name := "utente"
	if u, ok := m.users.Get(ctx, userID); ok {
		name = u.Name
	}
	return Prompt{
		Text: fmt.Sprintf("🏠 Ciao *%s*! Cosa vuoi fare?", name),
		Inline: [][]Button{
			{{Label: msgBtnContactEdit, Action: Action{Kind: ActContactEdit}}},
			{{Label: msgBtnStartListing, Action: Action{Kind: ActStartListing}}},
			{{Label: msgBtnViewListings, Action: Action{Kind: ActViewListings}}},
			{{Label: msgBtnSearchISBN, Action: Action{Kind: ActSearchISBN}}},
			{{Label: msgBtnChannel, URL: m.channelURL}},
		},
	}
}

func (m *Machine) summary(ctx context.Context, userID int64, d domain.Draft) Prompt {
	seller, _ := m.users.Get(ctx, userID)
	return Prompt{
		Text: render.DraftSummary(d, seller),
		Inline: [][]Button{
			{{Label: msgBtnConfirm, Action: Action{Kind: ActConfirm}}},
			cancelRow(),
		},
	}
}

func (m *Machine) draft(userID int64) domain.Draft {
	if v, ok := m.sessions.GetTemp(userID, tempDraft); ok {
		if d, ok := v.(domain.Draft); ok {
			return d
		}
	}
	return domain.Draft{}
}

func (m *Machine) saveDraft(userID int64, d domain.Draft) {
	m.sessions.SetTemp(userID, tempDraft, d)
}

func (m *Machine) tempString(userID int64, key string) string {
	if v, ok := m.sessions.GetTemp(userID, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
