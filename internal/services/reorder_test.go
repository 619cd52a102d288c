package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	list := []string{"a", "b", "c", "d"}

	got, err := Reorder(list, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, got)

	got, err = Reorder(list, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, got)

	got, err = Reorder(list, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	list := []string{"a", "b", "c"}

	_, err := Reorder(list, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestReorderBounds(t *testing.T) {
	list := []string{"a", "b"}

	_, err := Reorder(list, -1, 0)
	assert.Error(t, err)
	_, err = Reorder(list, 0, 2)
	assert.Error(t, err)
	_, err = Reorder(list, 2, 0)
	assert.Error(t, err)
	_, err = Reorder([]string{}, 0, 0)
	assert.Error(t, err)
}
