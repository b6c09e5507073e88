package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/template"
)

func names(stack []*template.Template) []string {
	out := make([]string, len(stack))
	for i, t := range stack {
		out[i] = t.Name
	}
	return out
}

func newRegistry(t *testing.T, factories ...template.Factory) *Registry {
	t.Helper()
	r := New()
	for _, f := range factories {
		require.NoError(t, r.RegisterTemplate(f))
	}
	return r
}

func TestResolveStackSharedDependency(t *testing.T) {
	r := newRegistry(t,
		factory("templer", "A"),
		factory("templer", "B", "A"),
		factory("templer", "C", "A", "B"),
	)

	stack, err := r.ResolveStack("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(stack))
}

func TestBuildTreeMarksDeduped(t *testing.T) {
	r := newRegistry(t,
		factory("templer", "A"),
		factory("templer", "B", "A"),
		factory("templer", "C", "A", "B"),
	)

	root, err := r.BuildTree("C")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.False(t, root.Children[0].Deduped)

	b := root.Children[1]
	require.Len(t, b.Children, 1)
	assert.True(t, b.Children[0].Deduped)
	assert.Equal(t, "A", b.Children[0].Template.Name)
}

func TestResolveStackQualifiedRequirement(t *testing.T) {
	r := newRegistry(t,
		factory("templer", "base"),
		factory("acme", "base"),
		factory("acme", "site", "acme#base", "templer#base"),
	)

	stack, err := r.ResolveStack("site")
	require.NoError(t, err)
	require.Len(t, stack, 3)
	assert.Equal(t, "acme#base", stack[0].FullName())
	assert.Equal(t, "templer#base", stack[1].FullName())
}

func TestResolveStackMultipleRefs(t *testing.T) {
	r := newRegistry(t,
		factory("templer", "base"),
		factory("templer", "docs", "base"),
		factory("templer", "pkg", "base"),
	)

	stack, err := r.ResolveStack("pkg", "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "pkg", "docs"}, names(stack))
}

func TestResolveStackCycle(t *testing.T) {
	r := newRegistry(t,
		factory("templer", "A", "C"),
		factory("templer", "B", "A"),
		factory("templer", "C", "B"),
	)

	_, err := r.ResolveStack("A")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateCycle))
	assert.Contains(t, err.Error(), "templer#A -> templer#C -> templer#B -> templer#A")
}

func TestResolveStackSelfRequirement(t *testing.T) {
	r := newRegistry(t, factory("templer", "loop", "loop"))
	_, err := r.ResolveStack("loop")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateCycle))
}

func TestResolveStackMissingRequirement(t *testing.T) {
	r := newRegistry(t, factory("templer", "pkg", "ghost"))
	_, err := r.ResolveStack("pkg")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestFlattenNil(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
