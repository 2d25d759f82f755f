// Package state keeps per-conversation session values for Telegram bots.
// It is domain-agnostic: callers choose the session type and the store
// only guarantees that access to one conversation is serialised.
package state
