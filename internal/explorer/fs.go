package explorer

import "os"

// dirEntry is one (name, kind) pair from a directory scan.
type dirEntry struct {
	name string
	kind Kind
}

// scanDir lists a directory as (name, kind) pairs. Entry order is
// whatever the OS yields; callers must not assume it is sorted.
func scanDir(path string) ([]dirEntry, error) {
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	out := make([]dirEntry, 0, len(ents))
	for _, ent := range ents {
		kind := KindFile
		switch {
		case ent.Type()&os.ModeSymlink != 0:
			kind = KindSymlink
		case ent.IsDir():
			kind = KindDirectory
		}
		out = append(out, dirEntry{name: ent.Name(), kind: kind})
	}
	return out, nil
}

// isReadable reports whether a path can be opened for listing. Used as
// the admission gate for directories during grouping and insertion.
func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// hasEntries peeks at a directory for at least one entry without
// reading the whole listing. Best-effort: false when the open or read
// fails.
func hasEntries(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	return err == nil && len(names) > 0
}
