// Package textutil compares short titles by their word content.
//
// Titles are case folded and split on anything that is not a letter or a
// digit; single character tokens are dropped. The resulting term-frequency
// vectors are compared with cosine similarity, which is enough to suggest the
// series a mistyped name most likely refers to.
package textutil
