package explorer

import "strings"

// IgnoreFilter decides which names never enter the tree. It is built
// once per Explorer from the gitignore pattern content, the explicit
// ignore list, and the dotfile toggle, and is immutable afterwards.
//
// Matching is deliberately flat: a literal full-name set plus "*.ext"
// extension wildcards. Nested gitignore directory semantics are not
// implemented.
type IgnoreFilter struct {
	names        map[string]struct{}
	extensions   map[string]struct{}
	showDotfiles bool
}

// NewIgnoreFilter builds the filter from the explorer options. When
// gitignore support is enabled, each line of the supplied content is
// trimmed of trailing path separators and added alongside the explicit
// ignore entries.
func NewIgnoreFilter(opts Options) *IgnoreFilter {
	f := &IgnoreFilter{
		names:        make(map[string]struct{}),
		extensions:   make(map[string]struct{}),
		showDotfiles: opts.ShowDotfiles,
	}

	for _, entry := range opts.Ignore {
		f.add(entry)
	}

	if opts.RespectGitignore {
		for _, line := range strings.Split(opts.GitignoreContent, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			f.add(strings.TrimRight(line, "/\\"))
		}
	}

	return f
}

func (f *IgnoreFilter) add(entry string) {
	if entry == "" {
		return
	}
	if strings.HasPrefix(entry, "*.") {
		f.extensions[entry[2:]] = struct{}{}
		return
	}
	f.names[entry] = struct{}{}
}

// ShouldIgnore reports whether a name is excluded from the tree.
func (f *IgnoreFilter) ShouldIgnore(name string) bool {
	if i := strings.LastIndex(name, "."); i >= 0 {
		if _, ok := f.extensions[name[i+1:]]; ok {
			return true
		}
	}
	if _, ok := f.names[name]; ok {
		return true
	}
	if !f.showDotfiles && strings.HasPrefix(name, ".") {
		return true
	}
	return false
}
