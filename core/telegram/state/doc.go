// Package state provides a lightweight in-memory session store for Telegram
// bot conversations. It is intentionally domain-agnostic so it can be reused
// across bots.
package state
