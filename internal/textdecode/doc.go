// Package textdecode turns raw file bytes into text without ever failing.
//
// Rule predicates inspect files written on many machines, and files
// such as .gitignore are regularly saved as UTF-16 or in a legacy code
// page. Decode tries a fixed sequence of encodings from golang.org/x/text
// and ends with a lossy UTF-8 conversion, so callers always receive valid
// text together with the name of the encoding that was used.
package textdecode
