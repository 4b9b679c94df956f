package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/mik/thesis/a.pdf", "a"},
		{"/home/mik/thesis/ch1/Intro.Final.PDF", "Intro.Final"},
		{"relative/no_ext", "no_ext"},
		{"/x/.hidden.pdf", ".hidden"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortName(tt.in), tt.in)
	}
}

func TestCollisionResolver_UniqueNamesPassThrough(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, "a", cr.Resolve("/in/a.pdf", "a"))
	assert.Equal(t, "b", cr.Resolve("/in/b.pdf", "b"))
}

func TestCollisionResolver_SameInputKeepsName(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, "a", cr.Resolve("/in/a.pdf", "a"))
	assert.Equal(t, "a", cr.Resolve("/in/a.pdf", "a"))
}

func TestCollisionResolver_DuplicatesGetSuffix(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, "notes", cr.Resolve("/in/ch1/notes.pdf", "notes"))
	assert.Equal(t, "notes - dup1", cr.Resolve("/in/ch2/notes.pdf", "notes"))
	assert.Equal(t, "notes - dup2", cr.Resolve("/in/ch3/notes.pdf", "notes"))
	// A repeat lookup returns the name already assigned.
	assert.Equal(t, "notes - dup1", cr.Resolve("/in/ch2/notes.pdf", "notes - dup1"))
}

func TestCollisionResolver_CaseInsensitive(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, "Thesis", cr.Resolve("/in/a/Thesis.pdf", "Thesis"))
	assert.Equal(t, "thesis - dup1", cr.Resolve("/in/b/thesis.pdf", "thesis"))
}

func TestCollisionResolver_SkipsClaimedSuffix(t *testing.T) {
	cr := NewCollisionResolver()
	// A real file literally named "x - dup1" claims that name first.
	assert.Equal(t, "x - dup1", cr.Resolve("/in/x - dup1.pdf", "x - dup1"))
	assert.Equal(t, "x", cr.Resolve("/in/a/x.pdf", "x"))
	assert.Equal(t, "x - dup2", cr.Resolve("/in/b/x.pdf", "x"))
}
