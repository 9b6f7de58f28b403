package session

import "context"

// Store persists sessions keyed by Telegram chat ID.
//
// Load returns a zero-valued session when the chat has no record yet. Save
// upserts with last-write-wins semantics; a chat user sends one message at a
// time, so no cross-user coordination is required of implementations.
type Store interface {
	Load(ctx context.Context, chatID int64) (*Session, error)
	Save(ctx context.Context, chatID int64, s *Session) error
}
