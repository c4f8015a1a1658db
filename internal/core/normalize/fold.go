package normalize

import "strings"

// foldPairs is the static fold table: Turkish letters plus the decorative
// small-capital and look-alike glyphs chat users reach for (ᴋɪᴢɪʟᴛᴇᴘᴇ).
// Output is always plain lowercase ASCII.
var foldPairs = []string{
	// Turkish
	"İ", "i", "I", "i", "ı", "i",
	"Ğ", "g", "ğ", "g",
	"Ü", "u", "ü", "u",
	"Ş", "s", "ş", "s",
	"Ö", "o", "ö", "o",
	"Ç", "c", "ç", "c",
	"Â", "a", "â", "a",
	"Î", "i", "î", "i",
	"Û", "u", "û", "u",

	// small capitals
	"ᴀ", "a", "ʙ", "b", "ᴄ", "c", "ᴅ", "d", "ᴇ", "e",
	"ꜰ", "f", "ɢ", "g", "ʜ", "h", "ɪ", "i", "Ɪ", "i",
	"ᴊ", "j", "ᴋ", "k", "ʟ", "l", "ᴍ", "m", "ɴ", "n",
	"ᴏ", "o", "ᴘ", "p", "ꞯ", "q", "ʀ", "r", "ꜱ", "s",
	"ᴛ", "t", "ᴜ", "u", "ᴠ", "v", "ᴡ", "w", "ʏ", "y",
	"ᴢ", "z",

	// stroked and turned forms NFKD leaves alone
	"ᴆ", "d", "ᴌ", "l", "ᴓ", "o", "ᴉ", "i",
}

var folder = strings.NewReplacer(foldPairs...)

func foldTable(s string) string { return folder.Replace(s) }

