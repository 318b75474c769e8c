package stockfolio

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// sampleCatalog returns two portfolios whose free text needs escaping.
func sampleCatalog() Catalog {
	clock := stepClock()
	tech := NewPortfolio("Tech", "Large caps, mostly US", clock)
	tech.AddHolding(Holding{Symbol: "AAPL", Name: "Apple, Inc.", Quantity: 10, PurchasePrice: 150, CurrentPrice: 213.32})
	tech.AddHolding(Holding{Symbol: "MSFT", Name: "Microsoft Corporation", Quantity: 5, PurchasePrice: 300.5, CurrentPrice: 425.35})
	empty := NewPortfolio("Empty", "", clock)
	europe := NewPortfolio("Europe", "ASML and friends", clock)
	europe.AddHolding(Holding{Symbol: "ASML", Name: "ASML Holding N.V.", Quantity: 2, PurchasePrice: 640.5, CurrentPrice: 701.1})
	return Catalog{tech, empty, europe}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleCatalog()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `Tech,Large caps; mostly US
AAPL,Apple; Inc.,10,150.00,213.32
MSFT,Microsoft Corporation,5,300.50,425.35
---
Empty,
---
Europe,ASML and friends
ASML,ASML Holding N.V.,2,640.50,701.10
`
	if got := buf.String(); got != want {
		t.Errorf("Encode() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode(nil) = %q, want empty", buf.String())
	}
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{1, "1.00"},
		{213.3249, "213.32"},
		{0.125, "0.13"},
		{2.675, "2.68"},
		{1.005, "1.01"},
		{0, "0.00"},
		{1234567.891, "1234567.89"},
	}
	for _, tc := range testCases {
		if got := formatPrice(tc.in); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// flatten lists the persisted fields of a catalog.
func flatten(c Catalog) []string {
	var out []string
	for _, p := range c {
		out = append(out, "portfolio "+p.Name()+" | "+p.Description())
		for _, h := range p.Holdings() {
			out = append(out, strings.Join([]string{
				h.Symbol, h.Name, strconv.Itoa(h.Quantity), formatPrice(h.PurchasePrice), formatPrice(h.CurrentPrice),
			}, " | "))
		}
	}
	return out
}

func TestDecodeEncode_RoundTrip(t *testing.T) {
	clock := stepClock()
	a := NewPortfolio("Growth", "Long term", clock)
	a.AddHolding(Holding{Symbol: "NVDA", Name: "NVIDIA Corporation", Quantity: 7, PurchasePrice: 99.99, CurrentPrice: 120.01})
	a.AddHolding(Holding{Symbol: "AMZN", Name: "Amazon.com Inc.", Quantity: 1, PurchasePrice: 178.25, CurrentPrice: 0})
	b := NewPortfolio("Income", "", clock)
	b.AddHolding(Holding{Symbol: "JNJ", Name: "Johnson & Johnson", Quantity: 12, PurchasePrice: 147.95, CurrentPrice: 150})
	c := NewPortfolio("Empty", "nothing yet", clock)
	original := Catalog{a, b, c}

	var buf bytes.Buffer
	if err := Encode(&buf, original); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(&buf, WithClock(clock))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if diff := cmp.Diff(flatten(original), flatten(decoded)); diff != "" {
		t.Errorf("Decode(Encode()) mismatch (-want +got):\n%s", diff)
	}
	got, _ := decoded[0].Holding("NVDA")
	if got.Quantity != 7 || got.PurchasePrice != 99.99 || got.CurrentPrice != 120.01 {
		t.Errorf("Holding(NVDA) = %+v, want 7 @ 99.99 / 120.01", got)
	}
}

func TestDecode_Escaping(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleCatalog()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	c, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := c[0].Description(); got != "Large caps, mostly US" {
		t.Errorf("Description() = %q, want %q", got, "Large caps, mostly US")
	}
	if h, _ := c[0].Holding("AAPL"); h.Name != "Apple, Inc." {
		t.Errorf("Holding(AAPL).Name = %q, want %q", h.Name, "Apple, Inc.")
	}

	// A semicolon in the original text is read back as a comma.
	p := NewPortfolio("P", "a;b", nil)
	buf.Reset()
	Encode(&buf, Catalog{p})
	c, _ = Decode(&buf)
	if got := c[0].Description(); got != "a,b" {
		t.Errorf("Description() = %q, want %q", got, "a,b")
	}
}

func TestDecode(t *testing.T) {
	input := `
---
Tech,Large caps; mostly US
AAPL,Apple Inc.,10,150.00,213.32

MSFT,Microsoft Corporation,5,300.00
   
GOOGL,Alphabet Inc.,3,100.00,172.45,,
---
---
NoDescription
TSLA,Tesla; Inc.,2,200.00,177.40,extra,fields
Europe,ASML
`
	c, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []string{
		"portfolio Tech | Large caps, mostly US",
		"AAPL | Apple Inc. | 10 | 150.00 | 213.32",
		"GOOGL | Alphabet Inc. | 3 | 100.00 | 172.45",
		"portfolio NoDescription | ",
		"TSLA | Tesla, Inc. | 2 | 200.00 | 177.40",
	}
	if diff := cmp.Diff(want, flatten(c)); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	// "Europe,ASML" is a holding line of NoDescription with too few fields.
	if len(c) != 2 {
		t.Errorf("len(Decode()) = %d, want 2", len(c))
	}
	if _, ok := c[0].Holding("MSFT"); ok {
		t.Errorf("malformed MSFT line was decoded")
	}
}

func TestDecode_SkippedLines(t *testing.T) {
	input := strings.Join([]string{
		"P,",
		"AAPL,Apple Inc.,10,150.00,213.32",
		"MSFT,Microsoft Corporation,5,300.00", // 4 fields
		"GOOGL,Alphabet Inc.,ten,100.00,172.45",
		"AMZN,Amazon.com Inc.,1,abc,178.25",
		"META,Meta Platforms Inc.,1,485.15,",
		"NFLX,Netflix Inc.,0,624.55,624.55",
		"JPM,JPMorgan Chase & Co.,1,-189.70,189.70",
		"V,Visa Inc.,1,NaN,275.85",
		"JNJ,Johnson & Johnson,2,147.95,147.95",
	}, "\n")

	core, logs := observer.New(zap.WarnLevel)
	c, err := Decode(strings.NewReader(input), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(c) != 1 {
		t.Fatalf("len(Decode()) = %d, want 1", len(c))
	}
	var symbols []string
	for _, h := range c[0].Holdings() {
		symbols = append(symbols, h.Symbol)
	}
	if diff := cmp.Diff([]string{"AAPL", "JNJ"}, symbols); diff != "" {
		t.Errorf("decoded symbols mismatch (-want +got):\n%s", diff)
	}

	wantLines := []int64{3, 4, 5, 6, 7, 8, 9}
	if logs.Len() != len(wantLines) {
		t.Fatalf("logged %d warnings, want %d: %v", logs.Len(), len(wantLines), logs.All())
	}
	for i, entry := range logs.All() {
		if got := entry.ContextMap()["line"]; got != wantLines[i] {
			t.Errorf("warning %d line = %v, want %v", i, got, wantLines[i])
		}
	}
}

func TestDecode_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	input := strings.Join([]string{
		"Tech,",
		"AAPL," + long + ",10,150.00,213.32",
		"BAD," + long, // 2 fields
		"MSFT,Microsoft Corporation,5,300.00,425.35",
		"---",
		"Other,",
	}, "\n")

	core, logs := observer.New(zap.WarnLevel)
	c, err := Decode(strings.NewReader(input), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("len(Decode()) = %d, want 2", len(c))
	}
	var symbols []string
	for _, h := range c[0].Holdings() {
		symbols = append(symbols, h.Symbol)
	}
	if diff := cmp.Diff([]string{"AAPL", "MSFT"}, symbols); diff != "" {
		t.Errorf("decoded symbols mismatch (-want +got):\n%s", diff)
	}
	if got := c[0].Holdings()[0].Name; len(got) != len(long) {
		t.Errorf("len(AAPL name) = %d, want %d", len(got), len(long))
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d warnings, want 1", logs.Len())
	}
}

func TestDecode_MergesDuplicates(t *testing.T) {
	input := "P,\nAAPL,Apple Inc.,10,200.00,210.00\nAAPL,Apple Inc.,10,100.00,999.00\n"
	c, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	h, _ := c[0].Holding("AAPL")
	if c[0].Len() != 1 || h.Quantity != 20 || h.PurchasePrice != 150 || h.CurrentPrice != 210 {
		t.Errorf("Decode() = %d holdings, AAPL %+v, want one holding 20 @ 150 / 210", c[0].Len(), h)
	}
}

func TestDecode_Stamps(t *testing.T) {
	c, err := Decode(strings.NewReader("P,d\nX,X,1,1.00,1.00\n"), WithClock(FixedClock(t0)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	h, _ := c[0].Holding("X")
	if !c[0].CreatedAt().Equal(t0) || !c[0].LastUpdated().Equal(t0) || !h.LastUpdated.Equal(t0) {
		t.Errorf("stamps = %v, %v, %v, want %v", c[0].CreatedAt(), c[0].LastUpdated(), h.LastUpdated, t0)
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "---\n---\n"} {
		c, err := Decode(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", input, err)
		}
		if len(c) != 0 {
			t.Errorf("len(Decode(%q)) = %d, want 0", input, len(c))
		}
	}
}

func TestDecode_CRLF(t *testing.T) {
	input := "Tech,Large caps\r\nAAPL,Apple Inc.,10,150.00,213.32\r\n---\r\nOther,\r\n"
	c, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("len(Decode()) = %d, want 2", len(c))
	}
	if got := c[0].Description(); got != "Large caps" {
		t.Errorf("Description() = %q, want %q", got, "Large caps")
	}
	if got := c[0].Holdings()[0].CurrentPrice; got != 213.32 {
		t.Errorf("CurrentPrice = %v, want 213.32", got)
	}
}
