package explorer

import "fmt"

// Refresh re-synchronizes an already-populated entries list against the
// current on-disk state of dirPath. Vanished names are removed, new
// names are classified and inserted at positions consistent with the
// dirs/links/files ordering, and every surviving node keeps its
// identity, so open flags and cached descendants on unchanged subtrees
// are never disturbed. A scan failure is returned with entries
// untouched.
func (e *Explorer) Refresh(entries *[]*Node, dirPath string, owner *Node) error {
	ents, err := scanDir(dirPath)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dirPath, err)
	}

	dirs, links, files := e.partition(ents)

	present := make(map[string]struct{}, len(dirs)+len(links)+len(files))
	for _, name := range dirs {
		present[name] = struct{}{}
	}
	for _, name := range links {
		present[name] = struct{}{}
	}
	for _, name := range files {
		present[name] = struct{}{}
	}

	existing := make(map[string]*Node, len(*entries))
	for _, n := range *entries {
		existing[n.Name] = n
	}

	// Group-chain continuation. While the chain holds, the row's open
	// state lives on the owner; push it down before deciding. If the
	// scan still contains exactly the chained child, the whole diff
	// happens at the tail of the chain against the same entries list.
	// Otherwise the chain is severed and the old chained node rejoins
	// the diff as an ordinary entry.
	var severed *Node
	if owner != nil && owner.GroupNext != nil {
		owner.GroupNext.Open = owner.Open

		_, stillSole := present[owner.GroupNext.Name]
		if stillSole && len(present) == 1 {
			return e.Refresh(entries, owner.GroupNext.AbsolutePath, owner.GroupNext)
		}

		severed = owner.GroupNext
		owner.GroupNext = nil
		existing[severed.Name] = severed
	}

	// Removal pass: keep survivors in their relative order, referencing
	// the same node identities, then swap the backing slice.
	kept := make([]*Node, 0, len(*entries))
	for _, n := range *entries {
		if _, ok := present[n.Name]; ok {
			kept = append(kept, n)
		}
	}
	*entries = kept

	// Insertion/merge pass. The cursor tracks the position of the last
	// name that was kept or inserted; a new sibling lands immediately
	// after it, so additions appear next to their logical neighbors
	// instead of at the end. A gated-out candidate does not advance the
	// cursor.
	cursor := -1
	advance := func(name string) {
		for i, n := range *entries {
			if n.Name == name {
				cursor = i
				return
			}
		}
	}
	insert := func(n *Node) {
		cursor++
		*entries = append(*entries, nil)
		copy((*entries)[cursor+1:], (*entries)[cursor:])
		(*entries)[cursor] = n
		existing[n.Name] = n
	}

	for _, name := range dirs {
		if _, ok := existing[name]; ok {
			advance(name)
			continue
		}
		n := newDirectoryNode(dirPath, name)
		if !isReadable(n.AbsolutePath) {
			continue
		}
		insert(n)
	}
	for _, name := range links {
		if _, ok := existing[name]; ok {
			advance(name)
			continue
		}
		n := newSymlinkNode(dirPath, name)
		if n.LinkTarget == "" {
			continue
		}
		insert(n)
	}
	for _, name := range files {
		if _, ok := existing[name]; ok {
			advance(name)
			continue
		}
		insert(newFileNode(dirPath, name))
	}

	if severed != nil {
		// The severed node rejoins the list only if its name is still
		// on disk; a vanished name dies like any other entry.
		if _, ok := present[severed.Name]; ok {
			*entries = append([]*Node{severed}, *entries...)
		}
	}

	if e.decorate != nil {
		e.decorate(*entries, dirPath)
	}
	return nil
}
