package strings

import (
	"reflect"
	"testing"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("nil -> %v", got)
	}
	if got := IfEmpty([]string{}, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("empty -> %v", got)
	}
	in := []string{"POST"}
	if got := IfEmpty(in, def); !reflect.DeepEqual(got, in) {
		t.Fatalf("set -> %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"listings":     "/listings",
		"/listings/":   "/listings",
		"  /places  ":  "/places",
		"//blacklist/": "/blacklist",
		"meta/health":  "/meta/health",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", " ", "/", " // "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("MustPrefix(%q) should panic", bad)
				}
			}()
			_ = MustPrefix(bad)
		}()
	}
}

func TestPreview(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"Sakarya'dan\nBolu'ya  yük", 0, "Sakarya'dan Bolu'ya yük"},
		{"Kızıltepe Ankara", 9, "Kızıltepe…"},
		{"kısa", 10, "kısa"},
		{"abc", 3, "abc"},
	}
	for _, tc := range cases {
		if got := Preview(tc.in, tc.n); got != tc.want {
			t.Fatalf("Preview(%q, %d) = %q want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
