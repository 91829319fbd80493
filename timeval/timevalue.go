// Package timeval provides the logical time value types used throughout the
// reactor engine: TimeValue (a non-negative duration) and Tag (a superdense
// time coordinate built on top of it).
package timeval

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// nanosPerSecond is the number of nanoseconds in one second.
const nanosPerSecond = 1_000_000_000

// TimeValue is a non-negative duration expressed as whole seconds plus a
// sub-second remainder in nanoseconds. Nanos is always in [0, 1e9).
type TimeValue struct {
	Seconds uint64
	Nanos   uint32
}

// NEVER is the smallest representable TimeValue.
var NEVER = TimeValue{Seconds: 0, Nanos: 0}

// FOREVER is the largest representable TimeValue, used as a sentinel for
// "no deadline" / "unbounded delay".
var FOREVER = TimeValue{Seconds: ^uint64(0), Nanos: nanosPerSecond - 1}

// Unit is a duration unit accepted by FromUnits.
type Unit int

const (
	Nanoseconds Unit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks
)

var unitToNanos = map[Unit]float64{
	Nanoseconds:  1,
	Microseconds: 1_000,
	Milliseconds: 1_000_000,
	Seconds:      1_000_000_000,
	Minutes:      60 * 1_000_000_000,
	Hours:        3600 * 1_000_000_000,
	Days:         24 * 3600 * 1_000_000_000,
	Weeks:        7 * 24 * 3600 * 1_000_000_000,
}

// ErrNegativeValue is returned when a construction or subtraction would
// produce a negative duration.
var ErrNegativeValue = errors.New("timeval: value would be negative")

// ErrNonIntegerValue is returned by FromUnits when value does not represent
// a whole number of nanoseconds.
var ErrNonIntegerValue = errors.New("timeval: value is not an integer number of nanoseconds")

// ErrOverflow is returned when a conversion would exceed the representable
// range of TimeValue.
var ErrOverflow = errors.New("timeval: value exceeds representable range")

// FromUnits builds a TimeValue from a quantity expressed in unit. value must
// be non-negative and must convert to a whole number of nanoseconds.
func FromUnits(value float64, unit Unit) (TimeValue, error) {
	if value < 0 {
		return TimeValue{}, fmt.Errorf("%w: %v %v", ErrNegativeValue, value, unit)
	}

	factor, ok := unitToNanos[unit]
	if !ok {
		return TimeValue{}, fmt.Errorf("timeval: unknown unit %v", unit)
	}

	totalNanos := value * factor
	if totalNanos >= float64(^uint64(0)) {
		return TimeValue{}, fmt.Errorf("%w: %v %v", ErrOverflow, value, unit)
	}

	if totalNanos != math.Trunc(totalNanos) {
		return TimeValue{}, fmt.Errorf("%w: %v %v", ErrNonIntegerValue, value, unit)
	}

	return FromNanos(uint64(totalNanos)), nil
}

// FromNanos builds a TimeValue from a whole count of nanoseconds.
func FromNanos(nanos uint64) TimeValue {
	return TimeValue{
		Seconds: nanos / nanosPerSecond,
		Nanos:   uint32(nanos % nanosPerSecond),
	}
}

// ToNanos returns the TimeValue as a count of nanoseconds. It saturates at
// math.MaxUint64 rather than overflowing silently.
func (t TimeValue) ToNanos() uint64 {
	secNanos := t.Seconds * nanosPerSecond
	if t.Seconds != 0 && secNanos/nanosPerSecond != t.Seconds {
		return ^uint64(0)
	}
	total := secNanos + uint64(t.Nanos)
	if total < secNanos {
		return ^uint64(0)
	}
	return total
}

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than other.
func (t TimeValue) Compare(other TimeValue) int {
	switch {
	case t.Seconds < other.Seconds:
		return -1
	case t.Seconds > other.Seconds:
		return 1
	case t.Nanos < other.Nanos:
		return -1
	case t.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// Equal reports whether t and other denote the same duration.
func (t TimeValue) Equal(other TimeValue) bool {
	return t.Compare(other) == 0
}

// Before reports whether t is strictly less than other.
func (t TimeValue) Before(other TimeValue) bool {
	return t.Compare(other) < 0
}

// After reports whether t is strictly greater than other.
func (t TimeValue) After(other TimeValue) bool {
	return t.Compare(other) > 0
}

// Add returns t + other. Overflow saturates at FOREVER, matching the
// sentinel semantics used throughout the scheduler.
func (t TimeValue) Add(other TimeValue) TimeValue {
	seconds := t.Seconds + other.Seconds
	if seconds < t.Seconds {
		return FOREVER
	}

	nanos := t.Nanos + other.Nanos
	if nanos >= nanosPerSecond {
		nanos -= nanosPerSecond
		seconds++
		if seconds == 0 {
			return FOREVER
		}
	}

	return TimeValue{Seconds: seconds, Nanos: nanos}
}

// Subtract returns t - other. It fails if the result would be negative.
func (t TimeValue) Subtract(other TimeValue) (TimeValue, error) {
	if t.Before(other) {
		return TimeValue{}, fmt.Errorf("%w: %v - %v", ErrNegativeValue, t, other)
	}

	seconds := t.Seconds - other.Seconds
	var nanos int64 = int64(t.Nanos) - int64(other.Nanos)
	if nanos < 0 {
		nanos += nanosPerSecond
		seconds--
	}

	return TimeValue{Seconds: seconds, Nanos: uint32(nanos)}, nil
}

// Multiply returns t scaled by a non-negative integer factor, saturating at
// FOREVER on overflow.
func (t TimeValue) Multiply(factor uint64) TimeValue {
	if factor == 0 {
		return NEVER
	}

	nanos := t.ToNanos()
	if nanos == ^uint64(0) {
		return FOREVER
	}

	product := nanos * factor
	if nanos != 0 && product/nanos != factor {
		return FOREVER
	}

	return FromNanos(product)
}

// IsNever reports whether t is the NEVER sentinel.
func (t TimeValue) IsNever() bool {
	return t == NEVER
}

// IsForever reports whether t is the FOREVER sentinel.
func (t TimeValue) IsForever() bool {
	return t == FOREVER
}

// String renders the value as "<seconds>.<nanos>s" for debugging and logs.
func (t TimeValue) String() string {
	if t.IsForever() {
		return "FOREVER"
	}
	if t.IsNever() {
		return "0s"
	}
	return fmt.Sprintf("%d.%09ds", t.Seconds, t.Nanos)
}

// neverWireValue and foreverWireValue are the sentinel encodings required by
// the wire format: NEVER is the minimum signed 64-bit value reinterpreted as
// unsigned, FOREVER is the maximum signed 64-bit value.
const (
	neverWireValue   uint64 = 0x8000_0000_0000_0000
	foreverWireValue uint64 = 0x7FFF_FFFF_FFFF_FFFF
)

// ToNanosLE encodes t as 8 bytes, little-endian nanoseconds since epoch,
// honoring the NEVER/FOREVER sentinel encodings from the wire format.
func (t TimeValue) ToNanosLE() [8]byte {
	var raw uint64
	switch {
	case t.IsNever():
		raw = neverWireValue
	case t.IsForever():
		raw = foreverWireValue
	default:
		raw = t.ToNanos()
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], raw)
	return buf
}

// FromNanosLE decodes 8 little-endian bytes into a TimeValue, recognizing the
// NEVER/FOREVER sentinel encodings.
func FromNanosLE(buf [8]byte) TimeValue {
	raw := binary.LittleEndian.Uint64(buf[:])
	switch raw {
	case neverWireValue:
		return NEVER
	case foreverWireValue:
		return FOREVER
	default:
		return FromNanos(raw)
	}
}
