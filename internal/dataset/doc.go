// Package dataset joins the station and price tables into the combined
// working table.
//
// The join is a right join of stations onto prices keyed by station code:
// every price row produces exactly one combined row, stations without a
// current price are dropped, and prices without a known station keep
// zero-valued station columns.
package dataset
