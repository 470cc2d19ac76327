package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_Registered(t *testing.T) {
	cmds := commands()

	for _, name := range []string{
		"migrate",
		"db-seed",
		"db-reset",
		"set-pin",
		"grant-role",
		"revoke-elevation",
		"purge-grants",
	} {
		cmd, ok := cmds[name]
		require.True(t, ok, "command %s missing", name)
		assert.Equal(t, name, cmd.name)
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestDBReset_RequiresConfirmation(t *testing.T) {
	err := runDBReset(&commandContext{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-yes")
}
