package stockfolio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// This file contains the codec for the catalog file, a line oriented text format:
//
//	Tech,Large caps; mostly US
//	AAPL,Apple Inc.,10,150.00,213.32
//	MSFT,Microsoft Corporation,5,300.00,425.35
//	---
//	Europe,
//	ASML,ASML Holding N.V.,2,640.50,701.10
//
// Each portfolio starts with a header line "name,description" followed by its
// holdings "symbol,name,quantity,purchasePrice,currentPrice". Portfolios are
// separated by a line containing exactly "---".
//
// Free text cannot contain the field separator: commas in descriptions and
// holding names are written as semicolons, and semicolons are read back as
// commas. A semicolon in the original text therefore comes back as a comma.

const sectionSeparator = "---"

// holdingFields is the number of fields of a holding line.
const holdingFields = 5

// Option configures Decode and Load.
type Option func(*options)

type options struct {
	clock  Clock
	logger *zap.Logger
}

// WithClock sets the clock stamping decoded portfolios and holdings.
func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

// WithLogger sets the logger receiving a warning for each skipped line and
// for an unreadable file.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

func newOptions(opts []Option) options {
	o := options{clock: SystemClock, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = SystemClock
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

func escapeText(s string) string   { return strings.ReplaceAll(s, ",", ";") }
func unescapeText(s string) string { return strings.ReplaceAll(s, ";", ",") }

// formatPrice formats v with two decimals, halves rounded away from zero.
func formatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Encode writes the catalog to w.
func Encode(w io.Writer, c Catalog) error {
	bw := bufio.NewWriter(w)
	for i, p := range c {
		if i > 0 {
			fmt.Fprintln(bw, sectionSeparator)
		}
		if err := encodePortfolio(bw, p); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("persist error: cannot write catalog: %w", err)
	}
	return nil
}

func encodePortfolio(w io.Writer, p *Portfolio) error {
	fmt.Fprintf(w, "%s,%s\n", p.Name(), escapeText(p.Description()))
	for _, h := range p.holdings {
		if !finite(h.PurchasePrice) || !finite(h.CurrentPrice) {
			return fmt.Errorf("persist error: %s in %q has a non finite price", h.Symbol, p.Name())
		}
		fmt.Fprintf(w, "%s,%s,%d,%s,%s\n",
			h.Symbol,
			escapeText(h.Name),
			h.Quantity,
			formatPrice(h.PurchasePrice),
			formatPrice(h.CurrentPrice),
		)
	}
	return nil
}

// Decode reads a catalog from r.
//
// Malformed holding lines are skipped with a warning and never stop the
// decoding. Holdings repeating a symbol within a portfolio are merged. Lines
// have no length limit. The only error returned is a read error from r.
func Decode(r io.Reader, opts ...Option) (Catalog, error) {
	d := decoder{options: newOptions(opts)}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			d.lineNo++
			d.decodeLine(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load error: cannot read catalog: %w", err)
		}
	}

	if d.current != nil {
		d.catalog = append(d.catalog, d.current)
	}
	return d.catalog, nil
}

// decoder holds the state of Decode between lines.
type decoder struct {
	options
	catalog Catalog
	current *Portfolio
	lineNo  int
}

func (d *decoder) decodeLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	if line == sectionSeparator {
		if d.current != nil {
			d.catalog = append(d.catalog, d.current)
		}
		d.current = nil
		return
	}

	if d.current == nil {
		d.current = decodeHeader(line, d.clock)
		return
	}

	h, err := decodeHolding(line)
	if err == nil {
		h.LastUpdated = d.clock.Now()
		err = d.current.AddHolding(h)
	}
	if err != nil {
		d.logger.Warn("skipping holding line",
			zap.Int("line", d.lineNo),
			zap.String("portfolio", d.current.Name()),
			zap.Error(err),
		)
	}
}

// decodeHeader reads "name,description". The description is optional.
func decodeHeader(line string, clock Clock) *Portfolio {
	name, description, _ := strings.Cut(line, ",")
	return NewPortfolio(name, unescapeText(description), clock)
}

// decodeHolding reads "symbol,name,quantity,purchasePrice,currentPrice".
func decodeHolding(line string) (Holding, error) {
	fields := splitFields(line)
	if len(fields) < holdingFields {
		return Holding{}, fmt.Errorf("format error: want %d fields, got %d", holdingFields, len(fields))
	}

	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return Holding{}, fmt.Errorf("format error: invalid quantity %q: %w", fields[2], err)
	}
	if quantity <= 0 {
		return Holding{}, fmt.Errorf("format error: quantity must be positive, got %d", quantity)
	}
	purchase, err := parsePrice(fields[3])
	if err != nil {
		return Holding{}, fmt.Errorf("format error: invalid purchase price: %w", err)
	}
	current, err := parsePrice(fields[4])
	if err != nil {
		return Holding{}, fmt.Errorf("format error: invalid current price: %w", err)
	}

	return Holding{
		Symbol:        fields[0],
		Name:          unescapeText(fields[1]),
		Quantity:      quantity,
		PurchasePrice: purchase,
		CurrentPrice:  current,
	}, nil
}

// splitFields splits on every comma and drops trailing empty fields.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if !finite(v) || v < 0 {
		return 0, fmt.Errorf("%q is not a valid price", s)
	}
	return v, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
