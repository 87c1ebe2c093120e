package ui

import (
	"hash/fnv"
	"strings"
)

// ID identifies a widget across frames.
type ID uint32

// HashID derives a child ID from seed and label. Only the part of the label
// after "##" is hashed when present, so visible text can change freely.
func HashID(seed ID, label string) ID {
	if i := strings.Index(label, "###"); i >= 0 {
		label = label[i:]
	}
	h := fnv.New32a()
	var b [4]byte
	b[0], b[1], b[2], b[3] = byte(seed), byte(seed>>8), byte(seed>>16), byte(seed>>24)
	h.Write(b[:])
	h.Write([]byte(label))
	id := ID(h.Sum32())
	if id == 0 {
		id = 1
	}
	return id
}

// visibleLabel strips the "##id" suffix.
func visibleLabel(label string) string {
	if i := strings.Index(label, "##"); i >= 0 {
		return label[:i]
	}
	return label
}
