package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/position"
)

func TestParseCommandSet(t *testing.T) {
	cmd, err := parseCommand("SET A1 =B1+2")
	require.NoError(t, err)
	assert.Equal(t, verbSet, cmd.Verb)
	assert.Equal(t, "A1", cmd.Ref)
	assert.Equal(t, "=B1+2", cmd.Arg)
}

func TestParseCommandPrint(t *testing.T) {
	cmd, err := parseCommand("print values")
	require.NoError(t, err)
	assert.Equal(t, verbPrint, cmd.Verb)
	assert.Equal(t, "VALUES", cmd.Arg)
}

func TestParseCommandGC(t *testing.T) {
	cmd, err := parseCommand("GC")
	require.NoError(t, err)
	assert.Equal(t, verbGC, cmd.Verb)
}

func TestParseCommandRejectsUnknownVerb(t *testing.T) {
	_, err := parseCommand("FROBNICATE A1")
	assert.Error(t, err)
}

func TestParseCommandRejectsMissingArgs(t *testing.T) {
	_, err := parseCommand("SET A1")
	assert.Error(t, err)
}

func TestParseRef(t *testing.T) {
	cases := map[string]position.Position{
		"A1":  position.New(0, 0),
		"B1":  position.New(0, 1),
		"Z1":  position.New(0, 25),
		"AA1": position.New(0, 26),
		"A10": position.New(9, 0),
	}
	for ref, want := range cases {
		got, err := parseRef(ref)
		require.NoError(t, err)
		assert.Equal(t, want, got, ref)
	}
}

func TestParseRefRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "1A", "A", "123"} {
		_, err := parseRef(bad)
		assert.Error(t, err, bad)
	}
}
