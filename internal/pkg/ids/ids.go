package ids

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sync/atomic"
	"time"
)

// Size is the identifier length in bytes; identifiers travel as
// lowercase hex strings of twice that length.
const Size = 32

var ErrMalformed = errors.New("malformed identifier")

var sequence atomic.Uint32

// Encode builds an identifier from a persisted monotonic counter, the
// creation time, and a process-monotonic sequence number. The counter
// occupies the leading bytes so identifiers stay unique even when
// timestamp and sequence collide; the tail is zero-filled.
func Encode(counter uint64, at time.Time, seq uint32) string {
	var b [Size]byte
	binary.BigEndian.PutUint64(b[0:8], counter)
	binary.BigEndian.PutUint64(b[8:16], uint64(at.Unix()))
	binary.BigEndian.PutUint32(b[16:20], seq)
	return hex.EncodeToString(b[:])
}

// New encodes an identifier for the given counter using the current
// time and the next process sequence number.
func New(counter uint64) string {
	return Encode(counter, time.Now(), NextSequence())
}

// NextSequence returns a process-monotonic sequence number.
func NextSequence() uint32 {
	return sequence.Add(1)
}

// Counter extracts the persisted counter value from an identifier.
func Counter(id string) (uint64, error) {
	raw, err := decode(id)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw[0:8]), nil
}

// CreatedAt extracts the creation timestamp from an identifier.
func CreatedAt(id string) (time.Time, error) {
	raw, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(binary.BigEndian.Uint64(raw[8:16])), 0), nil
}

// Validate reports whether id is a well-formed identifier.
func Validate(id string) error {
	_, err := decode(id)
	return err
}

func decode(id string) ([]byte, error) {
	if len(id) != Size*2 {
		return nil, ErrMalformed
	}
	raw, err := hex.DecodeString(id)
	if err != nil {
		return nil, ErrMalformed
	}
	return raw, nil
}
