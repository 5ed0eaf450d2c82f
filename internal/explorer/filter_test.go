package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIgnoreFilterDotfiles(t *testing.T) {
	t.Run("hides dotfiles when toggled off", func(t *testing.T) {
		f := NewIgnoreFilter(Options{ShowDotfiles: false})

		assert.True(t, f.ShouldIgnore(".git"))
		assert.True(t, f.ShouldIgnore(".gitignore"))
		assert.False(t, f.ShouldIgnore("main.go"))
	})

	t.Run("shows dotfiles when toggled on", func(t *testing.T) {
		f := NewIgnoreFilter(Options{ShowDotfiles: true})

		assert.False(t, f.ShouldIgnore(".git"))
		assert.False(t, f.ShouldIgnore(".env"))
	})
}

func TestIgnoreFilterExplicitList(t *testing.T) {
	f := NewIgnoreFilter(Options{
		ShowDotfiles: true,
		Ignore:       []string{"node_modules", "*.log"},
	})

	t.Run("matches literal names", func(t *testing.T) {
		assert.True(t, f.ShouldIgnore("node_modules"))
		assert.False(t, f.ShouldIgnore("node_modules2"))
	})

	t.Run("matches extension wildcards", func(t *testing.T) {
		assert.True(t, f.ShouldIgnore("build.log"))
		assert.True(t, f.ShouldIgnore("a.b.log"))
		assert.False(t, f.ShouldIgnore("build.logs"))
		assert.False(t, f.ShouldIgnore("log"))
	})
}

func TestIgnoreFilterGitignoreContent(t *testing.T) {
	t.Run("uses patterns when enabled", func(t *testing.T) {
		f := NewIgnoreFilter(Options{
			ShowDotfiles:     true,
			RespectGitignore: true,
			GitignoreContent: "dist/\n\n# a comment\nvendor\n*.tmp\n",
		})

		assert.True(t, f.ShouldIgnore("dist"), "trailing separator should be trimmed")
		assert.True(t, f.ShouldIgnore("vendor"))
		assert.True(t, f.ShouldIgnore("cache.tmp"))
		assert.False(t, f.ShouldIgnore("# a comment"))
	})

	t.Run("ignores content when disabled", func(t *testing.T) {
		f := NewIgnoreFilter(Options{
			ShowDotfiles:     true,
			RespectGitignore: false,
			GitignoreContent: "vendor\n",
		})

		assert.False(t, f.ShouldIgnore("vendor"))
	})
}

func TestIgnoreFilterNoPartialMatching(t *testing.T) {
	// The filter is a flat set: literal full names and single trailing
	// extensions only, no globs and no nested directory semantics.
	f := NewIgnoreFilter(Options{
		ShowDotfiles: true,
		Ignore:       []string{"src/generated", "foo*"},
	})

	assert.True(t, f.ShouldIgnore("src/generated"))
	assert.False(t, f.ShouldIgnore("generated"))
	assert.False(t, f.ShouldIgnore("foobar"))
	assert.True(t, f.ShouldIgnore("foo*"))
}
