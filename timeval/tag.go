package timeval

import "encoding/binary"

// Tag is a point in superdense time: a TimeValue paired with a microstep
// counter that breaks ties between events sharing the same instant.
type Tag struct {
	Time      TimeValue
	Microstep uint32
}

// ZeroTag is the tag (NEVER, 0).
var ZeroTag = Tag{Time: NEVER, Microstep: 0}

// NewTag builds a tag at the given time, microstep 0.
func NewTag(t TimeValue) Tag {
	return Tag{Time: t, Microstep: 0}
}

// Compare returns -1, 0, or 1 comparing tags lexicographically on
// (Time, Microstep).
func (t Tag) Compare(other Tag) int {
	if c := t.Time.Compare(other.Time); c != 0 {
		return c
	}
	switch {
	case t.Microstep < other.Microstep:
		return -1
	case t.Microstep > other.Microstep:
		return 1
	default:
		return 0
	}
}

// Equal reports whether the two tags denote the same superdense instant.
func (t Tag) Equal(other Tag) bool {
	return t.Compare(other) == 0
}

// Before reports whether t strictly precedes other.
func (t Tag) Before(other Tag) bool {
	return t.Compare(other) < 0
}

// After reports whether t strictly follows other.
func (t Tag) After(other Tag) bool {
	return t.Compare(other) > 0
}

// GetLaterTag returns the tag obtained by waiting delay beyond t. A zero or
// NEVER delay leaves the tag unchanged (it denotes the same superdense
// instant, not a forward step); any other delay moves to microstep 0 at the
// later time.
func (t Tag) GetLaterTag(delay TimeValue) Tag {
	if delay.IsNever() {
		return t
	}
	return Tag{Time: t.Time.Add(delay), Microstep: 0}
}

// GetMicroStepsLater returns the tag n microsteps after t, same time.
func (t Tag) GetMicroStepsLater(n uint32) Tag {
	return Tag{Time: t.Time, Microstep: t.Microstep + n}
}

// MicroStepLater is GetMicroStepsLater(1), used pervasively for "one
// microstep later at the current time".
func (t Tag) MicroStepLater() Tag {
	return t.GetMicroStepsLater(1)
}

// ToBytesLE encodes the tag as 12 bytes: TimeValue (8 bytes LE) followed by
// the microstep (4 bytes LE).
func (t Tag) ToBytesLE() [12]byte {
	var buf [12]byte
	timeBytes := t.Time.ToNanosLE()
	copy(buf[0:8], timeBytes[:])
	binary.LittleEndian.PutUint32(buf[8:12], t.Microstep)
	return buf
}

// TagFromBytesLE decodes a 12-byte buffer produced by ToBytesLE.
func TagFromBytesLE(buf [12]byte) Tag {
	var timeBytes [8]byte
	copy(timeBytes[:], buf[0:8])
	return Tag{
		Time:      FromNanosLE(timeBytes),
		Microstep: binary.LittleEndian.Uint32(buf[8:12]),
	}
}
