package bot

import (
	"testing"

	"github.com/bnlibri/libribot/internal/flow"
)

func TestEncodeButtonAction(t *testing.T) {
	btn := encodeButton(flow.Button{
		Label:  "🗑️",
		Action: flow.Action{Kind: flow.ActDeleteSelect, Code: "AAAA1111"},
	})
	if btn.Unique != cbDeleteSelect {
		t.Fatalf("unique = %q", btn.Unique)
	}
	if btn.Data != "AAAA1111" {
		t.Fatalf("data = %q", btn.Data)
	}
	if btn.URL != "" {
		t.Fatalf("url = %q", btn.URL)
	}
}

func TestEncodeButtonURL(t *testing.T) {
	btn := encodeButton(flow.Button{Label: "🔗", URL: "https://t.me/x"})
	if btn.URL != "https://t.me/x" || btn.Unique != "" {
		t.Fatalf("url button wrong: %+v", btn)
	}
}

func TestEveryActionKindHasCallbackKey(t *testing.T) {
	kinds := []flow.ActionKind{
		flow.ActContactEdit, flow.ActStartListing, flow.ActViewListings,
		flow.ActSearchISBN, flow.ActConfirm, flow.ActCancel,
		flow.ActDeleteSelect, flow.ActDeleteConfirm,
	}
	seen := make(map[string]flow.ActionKind, len(kinds))
	for _, k := range kinds {
		key, ok := actionKeys[k]
		if !ok || key == "" {
			t.Fatalf("kind %d has no callback key", k)
		}
		if prev, dup := seen[key]; dup {
			t.Fatalf("key %q shared by kinds %d and %d", key, prev, k)
		}
		seen[key] = k
	}
}

func TestPromptMarkup(t *testing.T) {
	inline := promptMarkup(flow.Prompt{
		Inline: [][]flow.Button{{{Label: "a", Action: flow.Action{Kind: flow.ActCancel}}}},
	})
	if inline == nil || len(inline.InlineKeyboard) != 1 {
		t.Fatalf("inline markup wrong: %+v", inline)
	}

	reply := promptMarkup(flow.Prompt{ReplyRows: [][]string{{"Sì", "No"}}})
	if reply == nil || len(reply.ReplyKeyboard) != 1 || len(reply.ReplyKeyboard[0]) != 2 {
		t.Fatalf("reply markup wrong: %+v", reply)
	}
	if !reply.OneTimeKeyboard {
		t.Fatal("reply keyboard should be one-time")
	}

	remove := promptMarkup(flow.Prompt{RemoveReply: true})
	if remove == nil || !remove.RemoveKeyboard {
		t.Fatalf("remove markup wrong: %+v", remove)
	}

	if m := promptMarkup(flow.Prompt{Text: "plain"}); m != nil {
		t.Fatalf("plain prompt got markup: %+v", m)
	}
}
