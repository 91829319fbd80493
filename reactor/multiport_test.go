package reactor

import "testing"

// gather is a MultiPort fixture: three inputs written individually at
// startup, read back through a single aggregate present-if-any/value
// check at the same tag (the run itself ends one microstep later, when the
// members are no longer present).
type gather struct {
	*Reactor
	in      *MultiPort[int]
	out     int
	present bool
	got     []int
	gotOK   []bool
}

func newGather(container *Reactor, width int) *gather {
	g := &gather{got: make([]int, width), gotOK: make([]bool, width)}
	g.Reactor = NewReactor(container, g)
	g.in = NewMultiPort[int](g.Reactor, width, Input)

	g.AddReaction([]Triggerable{g.Startup}, []Argument{WriteMulti(g.in)}, func(sb *Sandbox) {
		w, _ := g.in.AsWritable(g.Reactor)
		for i := 0; i < w.Width(); i++ {
			w.Set(i, i*10)
		}
		g.present = g.in.IsPresent()
		for i := 0; i < g.in.Width(); i++ {
			g.got[i], g.gotOK[i] = g.in.At(i).Get()
		}
	})
	return g
}

func TestMultiPortAggregatesPresenceAndValues(t *testing.T) {
	app := NewApp(Config{Fast: true})
	g := newGather(app.Reactor, 3)

	if err := app.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !g.present {
		t.Fatal("MultiPort should be present after any member is set")
	}
	for i := 0; i < g.in.Width(); i++ {
		v, ok := g.got[i], g.gotOK[i]
		if !ok {
			t.Fatalf("member %d not present", i)
		}
		if v != i*10 {
			t.Fatalf("member %d = %d, want %d", i, v, i*10)
		}
	}

	ids := g.in.MemberIDs()
	if len(ids) != 3 {
		t.Fatalf("MemberIDs() len = %d, want 3", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate member id %q", id)
		}
		seen[id] = true
	}
}

// TestMultiPortMemberNameFallsBackToPosition checks that a MultiPort member,
// which is never itself a direct field of the container (only the MultiPort
// is), is named by the MultiPort's own field name plus its index.
func TestMultiPortMemberNameFallsBackToPosition(t *testing.T) {
	app := NewApp(Config{})
	g := newGather(app.Reactor, 3)

	if got := g.in.At(0).Name(); got != "in[0]" {
		t.Fatalf("Name() = %q, want %q", got, "in[0]")
	}
	if got := g.in.At(2).Name(); got != "in[2]" {
		t.Fatalf("Name() = %q, want %q", got, "in[2]")
	}
	if got := g.in.At(1).FullyQualifiedName(); got != "gather.in[1]" {
		t.Fatalf("FullyQualifiedName() = %q, want %q", got, "gather.in[1]")
	}
}
