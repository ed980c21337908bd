// Package pathfilter classifies relative project paths as ignored or kept.
//
// A Filter holds two ordered lists of regular expressions. Ignore patterns
// exclude a path from the scan as soon as one of them occurs anywhere in the
// slash-normalized path. Keep patterns describe files a published repository
// is expected to contain; they are reported alongside each file but never
// override an ignore decision.
package pathfilter
