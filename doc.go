// Package stockfolio tracks investment holdings grouped into named portfolios.
//
// The package provides:
//   - Portfolios and Holdings: positions unique by symbol, where buying more of
//     an instrument already held averages the purchase price over both lots.
//   - Catalog persistence: a line oriented, human-readable text file holding
//     every portfolio in order (see Encode and Decode).
//
// Timestamps are taken from an explicit Clock so that results are reproducible.
// Quotes come from the quote package, and the CLI lives in cmd.
package stockfolio
