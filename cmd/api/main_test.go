// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestMigrateDown_RejectsExtraArgs(t *testing.T) {
	down, _, err := newRootCommand().Find([]string{"migrate", "down"})
	require.NoError(t, err)

	assert.Error(t, down.Args(down, []string{"1", "2"}))
	assert.NoError(t, down.Args(down, []string{"3"}))
}
