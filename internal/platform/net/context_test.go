package net_test

import (
	"context"
	"net/http/httptest"
	"testing"

	pnet "yukbul/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	cases := []struct {
		name, req, chat string
	}{
		{"both", "req-1", "grp-kiziltepe"},
		{"request only", "req-2", ""},
		{"chat only", "", "grp-2"},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithRequest(context.Background(), tc.req, tc.chat)
			if got := pnet.RequestID(ctx); got != tc.req {
				t.Fatalf("RequestID = %q want %q", got, tc.req)
			}
			if got := pnet.ChatID(ctx); got != tc.chat {
				t.Fatalf("ChatID = %q want %q", got, tc.chat)
			}
		})
	}
}

func TestChatFromHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/listings/intake", nil)
	if got := pnet.ChatFromHeader(r); got != "" {
		t.Fatalf("absent header = %q", got)
	}
	r.Header.Set(pnet.ChatHeader, "  -100123 ")
	if got := pnet.ChatFromHeader(r); got != "-100123" {
		t.Fatalf("ChatFromHeader = %q", got)
	}
}
