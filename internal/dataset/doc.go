// Package dataset loads the ball-by-ball CSV into an immutable
// in-memory table with typed columns, and memoizes the result for the
// process lifetime. The documented CSV schema lives in the README.
package dataset
