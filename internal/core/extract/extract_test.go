package extract

import (
	"reflect"
	"testing"

	"yukbul/internal/core/gazetteer"
	"yukbul/internal/core/normalize"
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(gazetteer.Default())
}

func TestExtractCities_Table(t *testing.T) {
	e := newExtractor(t)
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"apostrophe suffixes in order", "Sakarya'dan Bolu'ya yük, 05321234567", []string{"sakarya", "bolu"}},
		{"province then district", "İzmir Buca çıkışlı Ankara teslim 0532 111 22 33", []string{"izmir", "buca", "ankara"}},
		{"repeats collapse", "Ankara ankara ANKARA", []string{"ankara"}},
		{"suffix glued is not a match", "Ankaralı şoför bursalı nakliyat aranıyor", nil},
		{"decorative text", "ᴋɪᴢɪʟᴛᴇᴘᴇ ➡️ ᴍᴇʀꜱɪɴ", []string{"kızıltepe", "mersin"}},
		{"no places", "yük var 05321234567 acil", nil},
		{"empty", "", nil},
		{"emoji only", "🚛🚛🚛", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.ExtractCities(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractCities(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractCities_UniqueAndOrdered(t *testing.T) {
	e := newExtractor(t)
	in := "Kocaeli Gebze → Konya Ereğli, dönüş Konya - Kocaeli 0544 111 22 33"
	norm := normalize.Normalize(in)
	got := e.ExtractCities(in)
	seen := map[string]bool{}
	last := -1
	for _, c := range got {
		nc := normalize.Normalize(c)
		if seen[nc] {
			t.Fatalf("duplicate %q in %v", c, got)
		}
		seen[nc] = true
		idx := indexWord(norm, nc)
		if idx < last {
			t.Fatalf("out of order at %q in %v", c, got)
		}
		last = idx
	}
	want := []string{"kocaeli", "gebze", "konya", "ereğli"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func indexWord(s, w string) int {
	padded := " " + s + " "
	for i := 0; i+len(w)+2 <= len(padded); i++ {
		if padded[i] == ' ' && padded[i+1:i+1+len(w)] == w && padded[i+1+len(w)] == ' ' {
			return i
		}
	}
	return -1
}

func TestMatches_OverlappingNames(t *testing.T) {
	e := newExtractor(t)
	got := e.Matches(normalize.Normalize("Marmara Ereğlisi - Çorlu"))
	var names []string
	for _, m := range got {
		names = append(names, m.Name.Display)
	}
	want := []string{"marmara ereğlisi", "marmara", "çorlu"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("Matches = %v, want %v", names, want)
	}
	if got[0].Start != 0 || got[0].End != len("marmara ereglisi") {
		t.Fatalf("span = [%d,%d)", got[0].Start, got[0].End)
	}
}

func TestExtractLinePairs(t *testing.T) {
	e := newExtractor(t)
	in := "Bursa - Van\r\n\r\n🚛 tır lazım\n  İzmir > Ankara 0532 111 22 33  \n"
	want := [][]string{{"bursa", "van"}, {"izmir", "ankara"}}
	if got := e.ExtractLinePairs(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractLinePairs = %#v, want %#v", got, want)
	}
	if got := e.ExtractLinePairs("tır lazım\nacil"); got != nil {
		t.Fatalf("no places should give nil, got %#v", got)
	}
}

func TestAutomaton_SkipsForeignBytes(t *testing.T) {
	a := newAutomaton()
	a.add("ab", 0)
	a.add("a-b", 1) // not in the alphabet, ignored
	a.add("b", 2)
	a.build()
	var got [][3]int
	a.each("xab-b", func(s, e, id int) { got = append(got, [3]int{s, e, id}) })
	want := [][3]int{{1, 3, 0}, {2, 3, 2}, {4, 5, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("each = %v, want %v", got, want)
	}
}
