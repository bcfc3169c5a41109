// Package viewmodel projects a multi-line document through one projection
// table per line.
//
// Model positions are (Row, Col) pairs in grapheme columns of the raw
// document. View positions are (Row, Col) pairs over the wrapped output,
// where Row counts output lines across the whole document.
package viewmodel
