package support

import "testing"

func TestAssertPanicsOnFalse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Assert(false, ...) did not panic")
		}
	}()
	Assert(false, "boom %d", 1)
}

func TestAssertDoesNotPanicOnTrue(t *testing.T) {
	Assert(true, "never")
}

func TestIDGenIsMonotonic(t *testing.T) {
	var id ID
	a := id.Gen()
	b := id.Gen()
	c := id.Gen()
	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("Gen sequence = %d,%d,%d, want 0,1,2", a, b, c)
	}
}
