package telegram

import (
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const defaultLongPollTimeout = 10 * time.Second

// PollerOptions configures BuildPoller.
type PollerOptions struct {
	RunMode                string
	LongPollTimeoutSeconds int

	WebhookListen string
	WebhookPort   int
	WebhookURL    string
}

// BuildPoller returns a telebot poller for the configured run mode.
func BuildPoller(opts PollerOptions) tele.Poller {
	if strings.EqualFold(strings.TrimSpace(opts.RunMode), "webhook") {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", opts.WebhookListen, opts.WebhookPort),
			Endpoint: &tele.WebhookEndpoint{PublicURL: opts.WebhookURL},
		}
	}

	timeout := defaultLongPollTimeout
	if opts.LongPollTimeoutSeconds > 0 {
		timeout = time.Duration(opts.LongPollTimeoutSeconds) * time.Second
	}
	return &tele.LongPoller{Timeout: timeout}
}
