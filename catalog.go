package stockfolio

import (
	"errors"
	"fmt"
)

// ErrDuplicatePortfolio is returned when adding a portfolio whose name is already used.
var ErrDuplicatePortfolio = errors.New("portfolio already exists")

// Catalog is the whole persisted state: portfolios in insertion order.
type Catalog []*Portfolio

// Find returns the first portfolio called name, or nil.
func (c Catalog) Find(name string) *Portfolio {
	for _, p := range c {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Add appends p unless a portfolio with the same name exists.
func (c *Catalog) Add(p *Portfolio) error {
	if c.Find(p.Name()) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicatePortfolio, p.Name())
	}
	*c = append(*c, p)
	return nil
}

// Remove deletes the portfolio called name and reports whether it existed.
func (c *Catalog) Remove(name string) bool {
	for i, p := range *c {
		if p.Name() == name {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}

// Holdings returns every holding of every portfolio, paired with its portfolio
// name, in catalog order.
func (c Catalog) Holdings() []PortfolioHolding {
	var all []PortfolioHolding
	for _, p := range c {
		for _, h := range p.Holdings() {
			all = append(all, PortfolioHolding{Portfolio: p.Name(), Holding: h})
		}
	}
	return all
}

// PortfolioHolding is a holding together with the name of the portfolio holding it.
type PortfolioHolding struct {
	Portfolio string
	Holding
}
