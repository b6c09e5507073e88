package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByPage(t *testing.T) {
	list := []Var{
		String("a", "", WithPage("Begin")),
		String("b", "", WithPage("Main")),
		String("c", "", WithPage("Begin")),
		String("d", "", WithPage("Metadata")),
	}
	pages := GroupByPage(list)

	require.Len(t, pages, 3)
	assert.Equal(t, "Begin", pages[0].Name)
	assert.Equal(t, []string{"a", "c"}, []string{pages[0].Vars[0].Name, pages[0].Vars[1].Name})
	assert.Equal(t, "Main", pages[1].Name)
	assert.Equal(t, "Metadata", pages[2].Name)
}

func TestFind(t *testing.T) {
	list := sampleVars()
	require.NotNil(t, Find(list, "version"))
	assert.Nil(t, Find(list, "missing"))

	Find(list, "version").Default = "2.0"
	assert.Equal(t, "2.0", list[1].Default)
}

func TestContextStages(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Set(StageIdentity, "package", "myproject"))
	require.NoError(t, c.Set(StageCollected, "package", "project"))
	require.NoError(t, c.Set(StageDerived, "egg_plugins", []string{"a"}))

	err := c.Set(StageSupplied, "package", "other")
	assert.Error(t, err)
	assert.Equal(t, "project", c.String("package"))

	stage, ok := c.StageOf("package")
	require.True(t, ok)
	assert.Equal(t, StageCollected, stage)
}

func TestContextSetDefault(t *testing.T) {
	c := NewContext()
	assert.True(t, c.SetDefault(StageSupplied, "author", "cli"))
	assert.False(t, c.SetDefault(StageSupplied, "author", "config file"))
	assert.Equal(t, "cli", c.String("author"))
}

func TestContextValuesAreCopies(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Set(StageIdentity, "project", "my.project"))
	require.NoError(t, c.Set(StageIdentity, "package", "myproject"))
	require.NoError(t, c.Set(StageCollected, "zip_safe", false))

	values := c.Values()
	values["project"] = "changed"
	assert.Equal(t, "my.project", c.String("project"))

	assert.Equal(t, map[string]any{"zip_safe": false}, c.Without("project", "package"))
	assert.Equal(t, "false", c.String("zip_safe"))
	assert.Equal(t, []string{"package", "project", "zip_safe"}, c.Names())
}
