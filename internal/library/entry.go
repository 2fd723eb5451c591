package library

import (
	"sort"

	"dirplay/internal/pathutil"
)

// Kind tells a directory entry apart from a playable file.
type Kind int

const (
	Directory Kind = iota
	File
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Entry is one row of a directory listing.
type Entry struct {
	Kind Kind
	Path string
}

// NewFile returns a File entry for path.
func NewFile(path string) Entry {
	return Entry{Kind: File, Path: path}
}

// NewDirectory returns a Directory entry for path.
func NewDirectory(path string) Entry {
	return Entry{Kind: Directory, Path: path}
}

func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// Name is the display name of the entry.
func (e Entry) Name() string {
	return pathutil.DisplayName(e.Path)
}

// Less orders directories before files, then by path.
func (e Entry) Less(other Entry) bool {
	if e.Kind != other.Kind {
		return e.Kind < other.Kind
	}
	return e.Path < other.Path
}

// SortEntries sorts a listing in place using Entry.Less.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Less(entries[j])
	})
}

// EqualListings reports whether two listings hold the same entries in the
// same order.
func EqualListings(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
