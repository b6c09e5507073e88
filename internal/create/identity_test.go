package create

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/catalog"
	"github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/template"
)

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Identity
	}{
		{"dotted", "my.package", Identity{Project: "my.package", Package: "mypackage", Egg: "my.package"}},
		{"with directory", "src/Foo.Bar", Identity{Project: "Foo.Bar", Package: "foobar", Egg: "Foo.Bar"}},
		{"trailing slash", "proj/", Identity{Project: "proj", Package: "proj", Egg: "proj"}},
		{"dashes", "my-tool", Identity{Project: "my-tool", Package: "mytool", Egg: "my_tool"}},
		{"accents", "café.app", Identity{Project: "café.app", Package: "cafeapp", Egg: "caf_.app"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewIdentity(tt.output))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"author=Jane", "url=http://x?a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"author": "Jane", "url": "http://x?a=b", "empty": ""}, got)

	for _, bad := range []string{"noequals", "=value"} {
		_, err := ParseAssignments([]string{bad})
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyntax), bad)
	}
}

func TestCheckDots(t *testing.T) {
	basic := catalog.BasicNamespace()
	nested := catalog.NestedNamespace()
	plain := template.New("plain").MustBuild()

	assert.NoError(t, CheckDots(basic, "my.example"))
	assert.NoError(t, CheckDots(nested, "plone.app.example"))
	assert.NoError(t, CheckDots(plain, "any thing.at.all"))

	err := CheckDots(basic, "example")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidProjectName))
	assert.Equal(t, "Project name expected 1 dots, supplied 'example' has 0 dots", errors.Message(err))

	err = CheckDots(basic, "my.1example")
	require.Error(t, err)
	assert.Equal(t, "Not a valid Python dotted name: my.1example ('1example' is not an identifier)", errors.Message(err))
}

func TestDotHelp(t *testing.T) {
	assert.Contains(t, DotHelp(catalog.BasicNamespace()), "1 dot in it")
	assert.Contains(t, DotHelp(catalog.NestedNamespace()), "'foo.bar.baz'")
	assert.Empty(t, DotHelp(template.New("plain").MustBuild()))
	assert.Equal(t, "This template expects a project name with 4 dots in it.\n",
		DotHelp(template.New("deep").NDots(4).MustBuild()))
}
