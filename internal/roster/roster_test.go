package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-backend/internal/models"
)

var testPlayers = []models.Player{
	{ID: "p1", Name: "Marta Silva", Number: 10},
	{ID: "p2", Name: "Marco Ruiz", Number: 7},
	{ID: "p3", Name: "Ines Costa", Number: 1, Position: "GK"},
	{ID: "p4", Name: "José Pereira", Number: 4},
}

func TestSearchRanksByDistance(t *testing.T) {
	results := Search(testPlayers, "mar")

	require.Len(t, results, 2)
	// Both Martas match as subsequences; the shorter name ranks first.
	assert.Equal(t, "p2", results[0].Player.ID)
	assert.Equal(t, "p1", results[1].Player.ID)
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	upper := Search(testPlayers, "INES")
	lower := Search(testPlayers, "ines")

	require.Len(t, upper, 1)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "p3", upper[0].Player.ID)
}

func TestSearchFoldsDiacritics(t *testing.T) {
	results := Search(testPlayers, "jose")

	require.Len(t, results, 1)
	assert.Equal(t, "p4", results[0].Player.ID)
}

func TestSearchEmptyQuery(t *testing.T) {
	assert.Nil(t, Search(testPlayers, ""))
	assert.Nil(t, Search(testPlayers, "   "))
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search(testPlayers, "zlatan"))
}

func TestCheckUniqueNumbers(t *testing.T) {
	assert.NoError(t, CheckUniqueNumbers(testPlayers))
	assert.NoError(t, CheckUniqueNumbers(nil))

	dupes := append([]models.Player{}, testPlayers...)
	dupes = append(dupes, models.Player{ID: "p5", Name: "Ana Lopes", Number: 10})
	err := CheckUniqueNumbers(dupes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number 10")
	assert.Contains(t, err.Error(), "Marta Silva")
	assert.Contains(t, err.Error(), "Ana Lopes")
}
