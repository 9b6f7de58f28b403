// Package telegram is the long-polling gateway between the Telegram Bot API
// and the conversation core. It knows nothing about sessions or commands;
// it converts updates to (chatID, name, text) and replies to sendMessage
// calls.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/perawita/bot-telegram-expxxx/internal/logging"
)

const defaultAPIBase = "https://api.telegram.org"

// Handler is the conversation core as seen from the gateway. An empty reply
// means nothing is sent; markdown selects MarkdownV2 parse mode.
type Handler interface {
	Handle(ctx context.Context, chatID int64, name, text string) (reply string, markdown bool)
}

type Gateway struct {
	token       string
	apiBase     string
	hc          *http.Client
	handler     Handler
	log         logging.Logger
	pollTimeout time.Duration
	offset      int64
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithAPIBase points the gateway at a different Bot API host. Used in tests.
func WithAPIBase(base string) Option {
	return func(g *Gateway) { g.apiBase = base }
}

func NewGateway(token string, handler Handler, pollTimeout time.Duration, log logging.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		token:       token,
		apiBase:     defaultAPIBase,
		handler:     handler,
		log:         log,
		pollTimeout: pollTimeout,
		// the HTTP timeout must outlast the long-poll window
		hc: &http.Client{Timeout: pollTimeout + 10*time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		From *struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"from"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Run polls getUpdates until ctx is cancelled. Poll errors are logged and
// retried after a short pause; a dead Telegram connection must not take the
// process down.
func (g *Gateway) Run(ctx context.Context) error {
	g.log.Info(ctx, "telegram gateway started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := g.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.log.Error(ctx, "getUpdates failed", "error", err.Error())
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, u := range updates {
			g.offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}

			name := ""
			if u.Message.From != nil {
				name = u.Message.From.FirstName
			}

			reply, markdown := g.handler.Handle(ctx, u.Message.Chat.ID, name, u.Message.Text)
			if reply == "" {
				continue
			}
			if err := g.sendMessage(ctx, u.Message.Chat.ID, reply, markdown); err != nil {
				g.log.Error(ctx, "sendMessage failed", "chat_id", u.Message.Chat.ID, "error", err.Error())
			}
		}
	}
}

func (g *Gateway) getUpdates(ctx context.Context) ([]update, error) {
	body, err := json.Marshal(map[string]any{
		"offset":          g.offset,
		"timeout":         int(g.pollTimeout.Seconds()),
		"allowed_updates": []string{"message"},
	})
	if err != nil {
		return nil, err
	}

	var out updatesResponse
	if err := g.call(ctx, "getUpdates", body, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("getUpdates: api returned ok=false")
	}
	return out.Result, nil
}

func (g *Gateway) sendMessage(ctx context.Context, chatID int64, text string, markdown bool) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if markdown {
		payload["parse_mode"] = "MarkdownV2"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := g.call(ctx, "sendMessage", body, &out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("sendMessage: %s", out.Description)
	}
	return nil
}

func (g *Gateway) call(ctx context.Context, method string, body []byte, out any) error {
	url := fmt.Sprintf("%s/bot%s/%s", g.apiBase, g.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
