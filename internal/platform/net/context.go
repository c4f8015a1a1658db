// Package net holds request scoped values shared by the HTTP layers
package net

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ChatHeader lets a chat bridge tag API calls with the group they came from
const ChatHeader = "X-Chat-ID"

type ctxKey struct{}

var keyChatID ctxKey

// WithRequest stores the request id where chi's RequestID middleware would,
// plus the originating chat id when known
func WithRequest(ctx context.Context, reqID, chatID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if chatID != "" {
		ctx = context.WithValue(ctx, keyChatID, chatID)
	}
	return ctx
}

// RequestID returns the request id on ctx, empty when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ChatID returns the chat id on ctx, empty when absent
func ChatID(ctx context.Context) string {
	v, _ := ctx.Value(keyChatID).(string)
	return v
}

// ChatFromHeader reads and trims the chat header
func ChatFromHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(ChatHeader))
}
