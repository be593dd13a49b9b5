// Package scan provides the byte-scanning primitives the engine uses to skip
// start positions that cannot begin a match.
//
// Single-byte scans delegate to bytes.IndexByte, which is vectorized by the
// runtime. Predicate scans use a lookup table; on CPUs with wide vector units
// the table scan runs over eight-byte chunks to give the compiler room to
// unroll, elsewhere it stays a plain byte loop.
package scan

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// wideChunks selects the chunked table scan. The chunked loop only pays for
// itself when loads are wide and cheap.
var wideChunks = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

// IndexByte returns the index of the first occurrence of c in haystack at or
// after position at, or -1 if c does not occur there.
func IndexByte(haystack []byte, at int, c byte) int {
	if at >= len(haystack) {
		return -1
	}
	i := bytes.IndexByte(haystack[at:], c)
	if i < 0 {
		return -1
	}
	return at + i
}

// Table is a byte membership table for predicate scans.
type Table [256]bool

// IndexTable returns the index of the first byte in haystack at or after
// position at that is set in the table, or -1 if there is none.
func IndexTable(haystack []byte, at int, table *Table) int {
	if at >= len(haystack) {
		return -1
	}
	if wideChunks {
		return indexTableChunked(haystack, at, table)
	}
	for i := at; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}

// indexTableChunked processes eight bytes per iteration.
func indexTableChunked(haystack []byte, at int, table *Table) int {
	i := at
	for ; i+8 <= len(haystack); i += 8 {
		c := haystack[i : i+8 : i+8]
		if table[c[0]] || table[c[1]] || table[c[2]] || table[c[3]] ||
			table[c[4]] || table[c[5]] || table[c[6]] || table[c[7]] {
			for j := 0; j < 8; j++ {
				if table[c[j]] {
					return i + j
				}
			}
		}
	}
	for ; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}
