// Package console is a stdin gateway for running the bot locally without a
// Telegram token. It feeds typed lines through the same conversation core.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/perawita/bot-telegram-expxxx/internal/format"
)

// consoleChatID keys the single local conversation in the session store.
const consoleChatID int64 = 1

// Handler is the conversation core as seen from the gateway.
type Handler interface {
	Handle(ctx context.Context, chatID int64, name, text string) (reply string, markdown bool)
}

type Gateway struct {
	handler Handler
	in      *bufio.Reader
	out     io.Writer
	// readPassword is a test seam around term.ReadPassword.
	readPassword func(fd int) ([]byte, error)
}

func NewGateway(handler Handler) *Gateway {
	return &Gateway{
		handler:      handler,
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		readPassword: term.ReadPassword,
	}
}

// Run reads lines until EOF or ctx cancellation. When the previous reply was
// the password prompt and stdin is a terminal, the next line is read with
// echo disabled.
func (g *Gateway) Run(ctx context.Context) error {
	fmt.Fprintln(g.out, "Local console gateway (type /start for commands, Ctrl-D to exit)")

	hidden := false
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprint(g.out, "> ")
		line, err := g.readLine(hidden)
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(g.out, "Bye!")
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		reply, _ := g.handler.Handle(ctx, consoleChatID, "console", line)
		hidden = reply == format.MsgPasswordPrompt
		if reply != "" {
			fmt.Fprintln(g.out, reply)
		}
	}
}

func (g *Gateway) readLine(hidden bool) (string, error) {
	if hidden && term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := g.readPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(g.out)
		return string(b), nil
	}

	line, err := g.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
