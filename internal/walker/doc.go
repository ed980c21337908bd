// Package walker performs the single read-only traversal of a project root.
//
// Every directory entry is classified exactly once as a kept file, kept
// directory, ignored file or ignored directory. Ignored directories are
// pruned before descent. Kept files get a streamed content hash, a sniffed
// MIME type and a salted identifier; all paths in the result are masked.
package walker
