// Package mmfile loads history containers into memory, mapping them where the
// platform allows.
package mmfile
