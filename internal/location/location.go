// Package location encodes GPS readings for transport in a URL path
// segment.
//
// The encoding is a fixed character substitution over a plain
// "lat;lon;epochMillis" string. It is obfuscation, not cryptography: it
// only prevents casually rearranging the captured fields without knowing
// the table. Nothing here provides integrity or confidentiality; do not
// build security decisions on top of it.
package location

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/playperu/questhunt/internal/questhunt"
)

// ErrDecode is returned for any malformed, truncated, or reordered
// payload. Decoding never produces a partial reading.
var ErrDecode = errors.New("malformed location payload")

// The plain alphabet is everything strconv emits for the serialized
// reading: digits, decimal point, minus sign, and the field separator.
const (
	plainAlphabet  = "0123456789.-;"
	cipherAlphabet = "kwnzqmbvtxrcg"
)

var (
	encodeTable = buildTable(plainAlphabet, cipherAlphabet)
	decodeTable = buildTable(cipherAlphabet, plainAlphabet)
)

func buildTable(from, to string) [256]byte {
	var t [256]byte
	for i := 0; i < len(from); i++ {
		t[from[i]] = to[i]
	}
	return t
}

// Encode serializes r as "lat;lon;epochMillis" and applies the
// substitution table. Capture time is carried at millisecond precision.
func Encode(r questhunt.LocationReading) string {
	plain := strconv.FormatFloat(r.Position.Lat, 'f', -1, 64) + ";" +
		strconv.FormatFloat(r.Position.Lon, 'f', -1, 64) + ";" +
		strconv.FormatInt(r.CapturedAt.UnixMilli(), 10)

	out := make([]byte, len(plain))
	for i := 0; i < len(plain); i++ {
		out[i] = encodeTable[plain[i]]
	}
	return string(out)
}

// Decode reverses Encode. Any byte outside the cipher alphabet, a wrong
// field count, or an unparsable field fails with ErrDecode.
func Decode(s string) (questhunt.LocationReading, error) {
	if s == "" {
		return questhunt.LocationReading{}, fmt.Errorf("%w: empty", ErrDecode)
	}

	plain := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b := decodeTable[s[i]]
		if b == 0 {
			return questhunt.LocationReading{}, fmt.Errorf("%w: unexpected character at %d", ErrDecode, i)
		}
		plain[i] = b
	}

	parts := strings.Split(string(plain), ";")
	if len(parts) != 3 {
		return questhunt.LocationReading{}, fmt.Errorf("%w: want 3 fields, got %d", ErrDecode, len(parts))
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return questhunt.LocationReading{}, fmt.Errorf("%w: latitude: %v", ErrDecode, err)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return questhunt.LocationReading{}, fmt.Errorf("%w: longitude: %v", ErrDecode, err)
	}
	millis, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return questhunt.LocationReading{}, fmt.Errorf("%w: timestamp: %v", ErrDecode, err)
	}

	return questhunt.LocationReading{
		Position:   questhunt.Coordinates{Lat: lat, Lon: lon},
		CapturedAt: time.UnixMilli(millis).UTC(),
	}, nil
}
