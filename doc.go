// Package portfolio models the trades of a brokerage account and the profit and loss they realize.
//
// A Trade is a buy or a sell of a stock or of option contracts. Sells are matched to earlier buys of
// the same symbol and security type, first in first out, by MatchFIFO and MatchBySymbol; the
// resulting pairs are summarized by Summarize into a Realized report.
//
// Amounts are decimal Money values and quantities decimal Quantity values, so that sums over many
// trades are exact.
//
// This package is the foundation of the `pca` assistant: the time periods it understands are in
// package timeexpr, the trade stores in package store, and the answers are rendered by package
// renderer.
package portfolio
