// Package bot implements the per-chat conversation core: the login-flow
// state machine and the command dispatcher that bridges chat messages to the
// panel API.
package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/perawita/bot-telegram-expxxx/internal/backend"
	"github.com/perawita/bot-telegram-expxxx/internal/format"
	"github.com/perawita/bot-telegram-expxxx/internal/logging"
	"github.com/perawita/bot-telegram-expxxx/internal/session"
)

// API is the surface of the panel backend the core calls into.
type API interface {
	Login(ctx context.Context, email, password string) (*backend.Profile, error)
	ListProducts(ctx context.Context) ([]backend.Product, error)
	Buy(ctx context.Context, productID, customerNo, userID string) (string, error)
}

// Handler processes one incoming chat message per call and produces at most
// one reply. An empty reply means the message was deliberately ignored.
type Handler struct {
	store session.Store
	api   API
	log   logging.Logger
}

func NewHandler(store session.Store, api API, log logging.Logger) *Handler {
	return &Handler{store: store, api: api, log: log}
}

// Handle runs one conversation turn for chatID: load session, interpret the
// message, persist the mutated session, reply. markdown reports whether the
// reply must be delivered as MarkdownV2. No turn is fatal; every failure
// path ends in a user-visible reply.
func (h *Handler) Handle(ctx context.Context, chatID int64, name, text string) (reply string, markdown bool) {
	log := h.log.With("chat_id", chatID, "turn", uuid.NewString())

	sess, err := h.store.Load(ctx, chatID)
	if err != nil {
		log.Error(ctx, "session load failed", "error", err.Error())
		return format.MsgInternalError, false
	}

	reply, markdown = h.dispatch(ctx, log, sess, name, strings.TrimSpace(text))

	if err := h.store.Save(ctx, chatID, sess); err != nil {
		// the reply is still delivered; the next turn starts from stale state
		log.Error(ctx, "session save failed", "error", err.Error())
	}
	return reply, markdown
}

func (h *Handler) dispatch(ctx context.Context, log logging.Logger, sess *session.Session, name, text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return h.handleText(ctx, log, sess, text)
	}

	fields := strings.Fields(text)
	// commands in groups arrive as /cmd@BotName
	cmd, _, _ := strings.Cut(fields[0], "@")

	switch cmd {
	case "/start":
		return format.Welcome(name), true

	case "/login":
		sess.ResetFlow()
		return format.MsgEmailPrompt, false

	case "/show_profile":
		if !sess.LoggedIn() {
			return format.MsgNotLoggedIn, false
		}
		u := sess.User
		return format.Profile(u.ID, u.Email, u.Name), true

	case "/show_balance":
		if !sess.LoggedIn() {
			return format.MsgNotLoggedIn, false
		}
		return format.Balance(sess.User.Balance), true

	case "/show_product":
		return h.handleProducts(ctx, log, sess)

	case "/buy":
		return h.handleBuy(ctx, log, sess, fields[1:])

	default:
		return format.MsgUnknownCommand, false
	}
}

// handleText is the login-flow state machine: it decides whether free text
// is an email, a password, or nothing at all.
func (h *Handler) handleText(ctx context.Context, log logging.Logger, sess *session.Session, text string) (string, bool) {
	switch sess.Step {
	case session.StepAwaitingEmail:
		if !strings.Contains(text, "@") {
			return format.MsgEmailInvalid, false
		}
		sess.Email = text
		sess.Step = session.StepAwaitingPassword
		return format.MsgPasswordPrompt, false

	case session.StepAwaitingPassword:
		sess.Password = text
		// the flow ends here regardless of how the login call turns out;
		// a failed attempt requires a fresh /login
		sess.Step = session.StepNone

		email, password := sess.Email, sess.Password
		profile, err := h.api.Login(ctx, email, password)
		sess.Email, sess.Password = "", ""

		if err != nil {
			if errors.Is(err, backend.ErrRejected) {
				log.Info(ctx, "login rejected")
				return format.MsgLoginFailed, false
			}
			log.Error(ctx, "login call failed", "error", err.Error())
			return format.MsgLoginError, false
		}

		sess.User = &session.User{
			ID:      profile.ID,
			Email:   profile.Email,
			Name:    profile.Name,
			Balance: profile.Balance,
		}
		log.Info(ctx, "login succeeded", "user_id", profile.ID)
		return format.LoginSuccess(profile.Name), false

	default:
		// nothing in progress; stay silent
		return "", false
	}
}

func (h *Handler) handleProducts(ctx context.Context, log logging.Logger, sess *session.Session) (string, bool) {
	if !sess.LoggedIn() {
		return format.MsgNotLoggedIn, false
	}

	products, err := h.api.ListProducts(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrRejected) {
			return format.MsgNoProducts, false
		}
		log.Error(ctx, "product listing failed", "error", err.Error())
		return format.MsgProductsError, false
	}
	if len(products) == 0 {
		return format.MsgNoProducts, false
	}

	views := make([]format.Product, len(products))
	for i, p := range products {
		views[i] = format.Product{ID: p.ID, Name: p.Name, Price: p.Price, Quota: p.Quota}
	}
	return format.ProductList(sess.User.Balance, views), true
}

func (h *Handler) handleBuy(ctx context.Context, log logging.Logger, sess *session.Session, args []string) (string, bool) {
	if !sess.LoggedIn() {
		return format.MsgNotLoggedIn, false
	}
	// tokens beyond the first two are ignored
	if len(args) < 2 {
		return format.MsgBuyUsage, false
	}

	saldo, err := h.api.Buy(ctx, args[0], args[1], sess.User.ID)
	if err != nil {
		var rej *backend.RejectionError
		if errors.As(err, &rej) {
			return format.BuyRejected(rej.Message), false
		}
		log.Error(ctx, "buy call failed", "error", err.Error())
		return format.MsgBuyError, false
	}

	log.Info(ctx, "purchase completed", "product_id", args[0])
	return format.BuySuccess(saldo), false
}
