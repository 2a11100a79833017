package symbol

import "testing"

func TestInternReturnsSameSymbolForEqualText(t *testing.T) {
	p := NewPool()

	a := p.Intern("foo")
	b := p.Intern("foo")

	if a != b {
		t.Errorf("Intern(\"foo\") = %v, then %v; want equal", a, b)
	}
}

func TestInternReturnsDifferentSymbolsForDifferentText(t *testing.T) {
	p := NewPool()

	a := p.Intern("foo")
	b := p.Intern("bar")

	if a == b {
		t.Errorf("Intern(\"foo\") and Intern(\"bar\") both returned %v; want distinct", a)
	}
}

func TestNameRoundTrips(t *testing.T) {
	p := NewPool()

	s := p.Intern("hello")
	if got := p.Name(s); got != "hello" {
		t.Errorf("Name(%v) = %q, want %q", s, got, "hello")
	}
}

func TestLen(t *testing.T) {
	p := NewPool()
	if got := p.Len(); got != 0 {
		t.Errorf("Len() on empty pool = %d, want 0", got)
	}

	p.Intern("a")
	p.Intern("b")
	p.Intern("a")

	if got := p.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestDefaultPoolIsShared(t *testing.T) {
	a := Intern("shared-default-pool-symbol")
	b := Intern("shared-default-pool-symbol")

	if a != b {
		t.Errorf("package-level Intern returned %v then %v; want equal", a, b)
	}
}
