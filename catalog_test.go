package stockfolio

import (
	"errors"
	"testing"
)

func TestCatalog(t *testing.T) {
	var c Catalog
	clock := stepClock()
	for _, name := range []string{"A", "B", "C"} {
		if err := c.Add(NewPortfolio(name, "", clock)); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	if err := c.Add(NewPortfolio("B", "again", clock)); !errors.Is(err, ErrDuplicatePortfolio) {
		t.Errorf("Add(B) twice error = %v, want ErrDuplicatePortfolio", err)
	}
	if p := c.Find("B"); p == nil || p.Description() != "" {
		t.Errorf("Find(B) = %v, want the first B", p)
	}
	if p := c.Find("Z"); p != nil {
		t.Errorf("Find(Z) = %v, want nil", p)
	}

	if !c.Remove("B") {
		t.Errorf("Remove(B) = false, want true")
	}
	if c.Remove("B") {
		t.Errorf("Remove(B) twice = true, want false")
	}
	if len(c) != 2 || c[0].Name() != "A" || c[1].Name() != "C" {
		t.Errorf("catalog = %v, want [A C]", c)
	}
}

func TestCatalog_Holdings(t *testing.T) {
	clock := stepClock()
	a := NewPortfolio("A", "", clock)
	a.AddHolding(H("X", 1, 1))
	a.AddHolding(H("Y", 1, 1))
	b := NewPortfolio("B", "", clock)
	b.AddHolding(H("X", 2, 2))

	got := Catalog{a, b}.Holdings()
	if len(got) != 3 {
		t.Fatalf("len(Holdings()) = %d, want 3", len(got))
	}
	if got[2].Portfolio != "B" || got[2].Symbol != "X" || got[2].Quantity != 2 {
		t.Errorf("Holdings()[2] = %+v, want X from B", got[2])
	}
}
