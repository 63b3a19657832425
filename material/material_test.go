package material

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBothDirections(t *testing.T) {
	for _, entry := range Entries() {
		id, err := IDFromName(entry.Name)
		require.NoErrorf(t, err, entry.Name)
		assert.Equal(t, entry.ID, id)

		name, err := NameFromID(entry.ID)
		require.NoErrorf(t, err, entry.Name)
		assert.Equal(t, entry.Name, name)
	}
}

func TestKnownIDs(t *testing.T) {
	id, err := IDFromName("ABS")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestUnknownName(t *testing.T) {
	_, err := IDFromName("VIBRANIUM")
	require.Error(t, err)

	unknownErr, ok := err.(UnknownMaterialError)
	require.True(t, ok)
	assert.Equal(t, "VIBRANIUM", unknownErr.Name)
}

func TestUnknownID(t *testing.T) {
	for _, id := range []int{-1, 17, 9999} {
		_, err := NameFromID(id)
		require.Errorf(t, err, "id %d", id)

		unknownErr, ok := err.(UnknownMaterialError)
		require.True(t, ok)
		assert.Equal(t, id, unknownErr.ID)
	}
}

func TestEntriesHideUnassignedIDs(t *testing.T) {
	names := lo.Map(Entries(), func(entry Entry, _ int) string {
		return entry.Name
	})
	assert.NotContains(t, names, unknownName)
	assert.NotEmpty(t, names)
}
