// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	assert.Equal(t, "analyze [path]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"format", "save", "dynamic-sentinel"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewShapesCommand(t *testing.T) {
	cmd := NewShapesCommand()

	assert.Equal(t, "shapes [shape-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"), "flag format should exist")
}

func TestNewRunsCommand(t *testing.T) {
	cmd := NewRunsCommand()

	assert.Equal(t, "runs [run-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"), "flag format should exist")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}
