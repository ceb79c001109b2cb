package telegram

import (
	"testing"

	"github.com/bnlibri/libribot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegisterCommandRequiresSlash(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"})
	if len(r.Commands()) != 0 {
		t.Fatal("command without slash prefix was registered")
	}
}

func TestLookupCommandByAlias(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("/done", commands.Command{Handler: noop, Description: "end", Aliases: []string{"fine"}})

	key, _, ok := r.LookupCommand("/fine")
	if !ok || key != "/done" {
		t.Fatalf("lookup = %q ok=%v", key, ok)
	}
	if _, _, ok := r.LookupCommand("done"); !ok {
		t.Fatal("bare name lookup failed")
	}
}

func TestRegisterCallbackRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCallback("confirm", noop); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := r.RegisterCallback("confirm", noop); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if got := r.ListCallbacks(); len(got) != 1 || got[0] != "confirm" {
		t.Fatalf("callbacks = %v", got)
	}
}

// The registry logs its skip paths, and registration happens before the
// logger is configured in tests. Every warn path must survive that.
func TestRegistryWarnPathsBeforeLoggerInit(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("", commands.Command{Handler: noop, Description: "x"})
	r.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"})
	r.RegisterCommand("/start", commands.Command{Handler: noop, Description: "x"})
	r.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})
	if err := r.RegisterCallback("", noop); err == nil {
		t.Fatal("empty callback key accepted")
	}
	if err := r.RegisterCallback("k", nil); err == nil {
		t.Fatal("nil callback handler accepted")
	}
	if len(r.Commands()) != 1 {
		t.Fatalf("commands = %v", r.Commands())
	}
}

func TestListCommandsHidesHidden(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("/start", commands.Command{Handler: noop, Description: "start"})
	r.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "debug", Hidden: true})

	visible := r.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible = %v", visible)
	}
	if all := r.ListCommands(false); len(all) != 2 {
		t.Fatalf("all = %v", all)
	}
}
