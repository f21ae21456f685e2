package trip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegsByDay_GroupsInOrder(t *testing.T) {
	legs := []TravelLeg{
		{ID: "a", Day: 1},
		{ID: "b", Day: 3},
		{ID: "c", Day: 1},
	}
	byDay := LegsByDay(legs)
	require.Len(t, byDay, 2)
	require.Equal(t, "a", byDay[1][0].ID)
	require.Equal(t, "c", byDay[1][1].ID)
	require.Equal(t, "b", byDay[3][0].ID)
}

func TestDiningByDay_LastLocationInDocumentOrderWins(t *testing.T) {
	restaurants := normalizeRestaurants(json.RawMessage(`{
		"byLocation": {
			"tokyo": {"label": "Tokyo", "forDays": [1, 2, 3], "spots": [{"name": "A"}, {"name": "B"}]},
			"hakone": {"label": "Hakone", "forDays": [3], "spots": [{"name": "C"}]}
		}
	}`))

	byDay := DiningByDay(restaurants)
	require.Equal(t, DayDining{Count: 2, LocationID: "tokyo"}, byDay[1])
	require.Equal(t, DayDining{Count: 1, LocationID: "hakone"}, byDay[3])
}

func TestGroupActivities_ContiguousBlocks(t *testing.T) {
	cost := 12500.0
	blocks := GroupActivities([]Activity{
		{Time: "09:00", Name: "Temple"},
		{Time: "10:30", Name: "Market", Duration: "2h"},
		{Time: "14:00", Name: "Museum", Cost: &cost},
		{Time: "11:00", Name: "Back to morning"},
		{Time: "dusk", Name: "Lanterns"},
	})

	require.Len(t, blocks, 4)
	require.Equal(t, "Morning", blocks[0].Label)
	require.Equal(t, "Afternoon", blocks[1].Label)
	require.Equal(t, "Morning", blocks[2].Label)
	require.Equal(t, "Evening", blocks[3].Label)

	require.Equal(t, "09:00 — Temple", blocks[0].Items[0])
	require.Equal(t, "10:30 — Market (2h)", blocks[0].Items[1])
	require.Equal(t, "14:00 — Museum — 12,500", blocks[1].Items[0])
}

func TestGroupActivities_ZeroCostOmitted(t *testing.T) {
	zero := 0.0
	blocks := GroupActivities([]Activity{{Time: "09:00", Name: "Free walk", Cost: &zero}})
	require.Equal(t, "09:00 — Free walk", blocks[0].Items[0])
}

func TestMatchHotelCity_WordOverlap(t *testing.T) {
	hotels := normalizeHotels(json.RawMessage(`{
		"kanazawa": {"location": "Kanazawa", "options": []},
		"takayama": {"location": "Takayama (old town)", "options": []}
	}`))

	city, key, ok := MatchHotelCity("Hotel near Kanazawa Station", hotels)
	require.True(t, ok)
	require.Equal(t, "kanazawa", key)
	require.Equal(t, "Kanazawa", city.Location)

	_, key, ok = MatchHotelCity("The Takayama ryokan", hotels)
	require.True(t, ok)
	require.Equal(t, "takayama", key)

	_, _, ok = MatchHotelCity("Sapporo", hotels)
	require.False(t, ok)

	_, _, ok = MatchHotelCity("", hotels)
	require.False(t, ok)
}

func TestMatchHotelCity_FirstInDocumentOrderWins(t *testing.T) {
	hotels := normalizeHotels(json.RawMessage(`{
		"bay": {"location": "Tokyo Bay", "options": []},
		"central": {"location": "Tokyo Station", "options": []}
	}`))

	_, key, ok := MatchHotelCity("Tokyo", hotels)
	require.True(t, ok)
	require.Equal(t, "bay", key)
}
