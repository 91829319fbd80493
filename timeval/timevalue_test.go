package timeval

import "testing"

func TestFromUnitsWholeValues(t *testing.T) {
	cases := []struct {
		value float64
		unit  Unit
		want  TimeValue
	}{
		{1, Seconds, TimeValue{Seconds: 1, Nanos: 0}},
		{1.5, Seconds, TimeValue{Seconds: 1, Nanos: 500_000_000}},
		{100, Milliseconds, TimeValue{Seconds: 0, Nanos: 100_000_000}},
		{0, Nanoseconds, TimeValue{}},
	}

	for _, c := range cases {
		got, err := FromUnits(c.value, c.unit)
		if err != nil {
			t.Fatalf("FromUnits(%v, %v) returned error: %v", c.value, c.unit, err)
		}
		if got != c.want {
			t.Fatalf("FromUnits(%v, %v) = %+v, want %+v", c.value, c.unit, got, c.want)
		}
	}
}

func TestFromUnitsRejectsNegative(t *testing.T) {
	if _, err := FromUnits(-1, Seconds); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestFromUnitsRejectsNonInteger(t *testing.T) {
	if _, err := FromUnits(0.5, Nanoseconds); err == nil {
		t.Fatal("expected error for non-integer nanosecond count")
	}
}

func TestAddSubtractRoundTrip(t *testing.T) {
	a := TimeValue{Seconds: 3, Nanos: 700_000_000}
	b := TimeValue{Seconds: 1, Nanos: 500_000_000}

	sum := a.Add(b)
	if want := (TimeValue{Seconds: 5, Nanos: 200_000_000}); sum != want {
		t.Fatalf("Add = %+v, want %+v", sum, want)
	}

	back, err := sum.Subtract(b)
	if err != nil {
		t.Fatalf("Subtract returned error: %v", err)
	}
	if back != a {
		t.Fatalf("Subtract = %+v, want %+v", back, a)
	}
}

func TestSubtractFailsOnNegativeResult(t *testing.T) {
	a := TimeValue{Seconds: 1}
	b := TimeValue{Seconds: 2}
	if _, err := a.Subtract(b); err == nil {
		t.Fatal("expected error subtracting a larger value")
	}
}

func TestMultiply(t *testing.T) {
	a := TimeValue{Seconds: 1, Nanos: 500_000_000}
	got := a.Multiply(2)
	want := TimeValue{Seconds: 3, Nanos: 0}
	if got != want {
		t.Fatalf("Multiply = %+v, want %+v", got, want)
	}
}

func TestCompareAndSentinels(t *testing.T) {
	if NEVER.Compare(FOREVER) >= 0 {
		t.Fatal("NEVER must compare less than FOREVER")
	}
	if !NEVER.IsNever() || !FOREVER.IsForever() {
		t.Fatal("sentinel predicates must hold for their own sentinels")
	}
}

func TestNanosLERoundTrip(t *testing.T) {
	values := []TimeValue{
		{Seconds: 0, Nanos: 0},
		{Seconds: 42, Nanos: 123_456_789},
		NEVER,
		FOREVER,
	}

	for _, v := range values {
		encoded := v.ToNanosLE()
		decoded := FromNanosLE(encoded)
		if decoded != v {
			t.Fatalf("round trip failed: %+v -> %x -> %+v", v, encoded, decoded)
		}
	}
}
