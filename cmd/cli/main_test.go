package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine_QuotedFlagValueStaysWhole(t *testing.T) {
	args, err := parseCommandLine(`cancel session-1 --reason "schedule conflict"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"cancel", "session-1", "--reason", "schedule conflict"}, args)

	args, err = parseCommandLine(`cancel session-1 --reason 'away that week'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"cancel", "session-1", "--reason", "away that week"}, args)
}

func TestParseCommandLine_PlainWords(t *testing.T) {
	args, err := parseCommandLine("signup   session-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"signup", "session-1"}, args)
}

func TestParseCommandLine_EmptyLine(t *testing.T) {
	args, err := parseCommandLine("")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestParseCommandLine_UnclosedQuote(t *testing.T) {
	_, err := parseCommandLine(`cancel session-1 --reason "schedule conflict`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed quote")
}
