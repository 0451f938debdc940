// Package gameid generates sortable identifiers for games. IDs are UUIDv7
// values encoded with Crockford's base32, so they sort by creation time and
// paste cleanly into URLs and logs.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// idLength is the number of base32 characters covering 128 bits.
const idLength = 26

// RandSource supplies the random tail of an ID. Inject a seeded source in
// tests; the default is crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// New returns a fresh game ID.
func New() string {
	return newID(time.Now(), nil)
}

// NewWithSource returns a game ID drawing its random bits from src.
func NewWithSource(src RandSource) string {
	return newID(time.Now(), src)
}

func newID(now time.Time, src RandSource) string {
	var id [16]byte

	// 48-bit millisecond timestamp, then 80 random bits.
	ms := now.UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}
	if src != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(src.Intn(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: " + err.Error())
	}

	// Version 7, variant 10.
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// encode writes the 128 bits as 26 base32 characters, 5 bits per character,
// most significant bits first.
func encode(id [16]byte) string {
	var out [idLength]byte
	for i := range out {
		offset := i * 5
		byteIdx, bitIdx := offset/8, offset%8

		var v byte
		if bitIdx <= 3 {
			v = (id[byteIdx] >> (3 - bitIdx)) & 0x1f
		} else {
			v = (id[byteIdx] << (bitIdx - 3)) & 0x1f
			if byteIdx+1 < len(id) {
				v |= id[byteIdx+1] >> (11 - bitIdx)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate reports whether id is a well-formed game ID.
func Validate(id string) error {
	if len(id) != idLength {
		return fmt.Errorf("game ID must be %d characters, got %d", idLength, len(id))
	}
	// The top two bits of a 128-bit value are always zero in this encoding.
	if id[0] > '7' {
		return fmt.Errorf("game ID starts with %c, want 0-7", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
