// Package match produces did-you-mean suggestions for misspelled identifiers.
package match
