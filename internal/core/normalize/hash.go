package normalize

// ContentHash is the dedup key of a message: the Java-style 31 polynomial over
// the space free normalized text, wrapping at 32 bits. Letter order matters.
func ContentHash(text string) int32 {
	return HashNormalized(Normalize(text))
}

// HashNormalized hashes text that is already normalized
func HashNormalized(norm string) int32 {
	var h int32
	for i := 0; i < len(norm); i++ {
		c := norm[i]
		if c == ' ' {
			continue
		}
		h = 31*h + int32(c)
	}
	return h
}

// Digits keeps only the ASCII digits of s, used to match number-like
// entries regardless of how the sender spaced them
func Digits(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
