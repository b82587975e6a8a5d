//go:build !integration

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// TestCommandGroupAssignments verifies that commands are assigned to appropriate groups
func TestCommandGroupAssignments(t *testing.T) {
	tests := []struct {
		commandName   string
		expectedGroup string
	}{
		{commandName: "validate", expectedGroup: "validation"},
		{commandName: "watch", expectedGroup: "validation"},
		{commandName: "schema", expectedGroup: "utilities"},
		{commandName: "mcp-server", expectedGroup: "utilities"},
		{commandName: "version", expectedGroup: ""},
	}

	for _, tt := range tests {
		t.Run(tt.commandName, func(t *testing.T) {
			cmd := findCommand(tt.commandName)
			require.NotNil(t, cmd, "Command %q not found", tt.commandName)
			assert.Equal(t, tt.expectedGroup, cmd.GroupID, "Command %q group", tt.commandName)
		})
	}
}

// TestCommandGroupsExist verifies that all expected command groups exist
func TestCommandGroupsExist(t *testing.T) {
	expectedGroups := map[string]string{
		"validation": "Validation Commands:",
		"utilities":  "Utilities:",
	}

	found := make(map[string]string)
	for _, group := range rootCmd.Groups() {
		found[group.ID] = group.Title
	}
	assert.Equal(t, expectedGroups, found)
}

func TestVerboseIsPersistent(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "--verbose should be a persistent flag")
	assert.Equal(t, "v", flag.Shorthand)
}
