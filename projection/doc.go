// Package projection translates offsets of a single source line, augmented
// with injected (virtual) text, to wrapped output positions and back.
//
// Three coordinate spaces are involved:
//   - source offsets: grapheme indices into the raw buffer line
//   - injected offsets: grapheme indices into the line with every injected
//     text spliced in at its anchor
//   - output positions: (output line, column) pairs after wrapping, where
//     every continuation line starts with WrappedIndent columns of indent
//
// A Table is immutable. Callers rebuild it whenever the line content,
// injected text or wrap width changes.
package projection
