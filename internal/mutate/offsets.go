package mutate

// UTF16Len returns the length of s in UTF-16 code units, the unit the
// remote document API counts all offsets in. Characters above the
// basic multilingual plane encode as a surrogate pair and count as
// two units. Every piece of offset arithmetic in this package goes
// through this function; mixing in byte or rune counts corrupts
// offsets.
func UTF16Len(s string) int64 {
	var n int64
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
