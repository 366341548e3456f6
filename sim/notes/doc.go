// Package notes turns worker definitions into sim inputs.
//
// Two formats are accepted: a strict YAML document and the line-oriented
// notes format ("Monkey 0:", "Starting items: ...", ...). Load reads either
// from any URL the afs storage layer understands (local paths, file://, mem://).
package notes
