package pathglob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_SimpleGlob(t *testing.T) {
	m, err := Compile([]string{"**/node_modules/**"})
	require.NoError(t, err)
	assert.True(t, m.Match("project/node_modules/left-pad/index.js"))
	assert.False(t, m.Match("project/src/index.js"))
}

func TestMatch_NegationReincludes(t *testing.T) {
	m, err := Compile([]string{"**/*.env", "!**/keep.env"})
	require.NoError(t, err)
	assert.True(t, m.Match("config/secrets.env"))
	assert.False(t, m.Match("config/keep.env"))
}

func TestMatch_LaterRuleWins(t *testing.T) {
	m, err := Compile([]string{"!**/*.log", "**/*.log"})
	require.NoError(t, err)
	assert.True(t, m.Match("debug.log"))
}

func TestMatch_NoRuleMatchesIsNotIgnored(t *testing.T) {
	m, err := Compile([]string{"**/target/**"})
	require.NoError(t, err)
	assert.False(t, m.Match("src/main.go"))
}

func TestMatch_NilMatcherNeverIgnores(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Match("anything"))
}
