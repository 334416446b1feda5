package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	id := uuid.New()

	lines, err := parseLines([]string{id.String() + ":3"})
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ProductID: id, Quantity: 3}}, lines)

	_, err = parseLines([]string{id.String()})
	require.Error(t, err)

	_, err = parseLines([]string{"nope:1"})
	require.Error(t, err)

	_, err = parseLines([]string{id.String() + ":x"})
	require.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := rootCmd()

	for _, path := range [][]string{
		{"migrate"},
		{"reset-stock"},
		{"release-stock"},
		{"cart", "add"},
		{"checkout", "begin"},
		{"checkout", "submit"},
		{"orders", "list"},
		{"methods"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}
