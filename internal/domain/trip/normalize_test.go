package trip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// A document exercising every alternate shape at once. Running the
// canonical output through the pipeline again must be a no-op.
const mixedShapeDoc = `{
	"trip": {"name": "Iceland Ring Road", "startDate": "June 5", "endDate": "June 15", "durationDays": 10, "vibe": "volcanic"},
	"days": [
		{"day": 2, "title": "Vik", "date": "June 6", "stay": {"city": "Vik", "area": "South Coast"},
		 "activities": [{"time": "10:00", "title": "Skogafoss", "details": "bring rain gear"}]},
		{"day": 1, "title": "Reykjavik", "transport": {"mode": "car", "duration": "1h"},
		 "activities": [
			{"time": "09:00", "name": "Hallgrimskirkja"},
			{"time": "11:00", "name": "Harpa"},
			{"time": "13:00", "name": "Old Harbour"},
			{"time": "15:00", "name": "Sun Voyager"},
			{"time": "19:00", "name": "Dinner downtown"}
		 ]}
	],
	"stats": [
		{"value": "2,000 km", "label": "driven"},
		{"value": "4+", "label": "waterfalls"},
		{"value": 42, "label": "stops"}
	],
	"packing": [{"category": "clothes", "items": ["jacket", "boots"]}],
	"bookings": [{"item": "Blue Lagoon", "when": "asap", "priority": "essential"}],
	"budget": {
		"breakdown": {"food": {"amount": 800, "note": "groceries"}},
		"total": "2400",
		"tips": ["Book early", "Use card"]
	},
	"dietary": {"requirements": ["gluten-free"], "apps": ["HappyCow"]},
	"transport": {"rentalCar": {"type": "4x4"}},
	"hotels": {
		"budget": "mid-range",
		"vik": {"location": "Vik", "nights": 2, "options": [{"name": "Hotel Kria", "price": "180"}]}
	},
	"restaurants": {
		"note": "check winter hours",
		"south-coast": [{"name": "Halldorskaffi", "dietary": {"glutenFree": true}, "note": "great lamb"}]
	},
	"travels": [{"day": 1, "from": "Reykjavik", "to": "Vik", "method": "rental car", "cost": "varies"}],
	"pins": {"items": [{"id": 1, "name": "Skogafoss", "lat": 63.5, "lng": -19.5,
		"region": "south", "category": "nature", "status": "matched", "day": 2}]},
	"luggageTags": {"days": {"day1": {"angle": 3}}, "hotelKeys": {"day2": "vik", "hotelA": "x"}},
	"routes": {"primary": []}
}`

func TestNormalize_Idempotent(t *testing.T) {
	doc := mustDoc(t, mixedShapeDoc)
	require.NoError(t, ValidateShape(doc))

	first := Normalize(doc)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	redecoded, err := DecodeDocument(firstJSON)
	require.NoError(t, err)
	require.NoError(t, ValidateShape(redecoded))

	second := Normalize(redecoded)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	require.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestNormalize_MinimalDocumentGetsDefaults(t *testing.T) {
	doc := mustDoc(t, `{"trip": {}, "days": [], "pins": {"items": []}}`)
	require.NoError(t, ValidateShape(doc))

	data := Normalize(doc)
	require.Equal(t, "Untitled Trip", data.Trip.Title)
	require.Equal(t, 1, data.Trip.Travelers)
	require.Equal(t, 1, data.Trip.DurationDays)
	require.Equal(t, 0, data.Trip.DurationNights)
	require.NotNil(t, data.Days)
	require.Empty(t, data.Days)
	require.NotNil(t, data.Stats)
	require.NotNil(t, data.Packing)
	require.NotNil(t, data.Bookings)
	require.NotNil(t, data.Hotels.Cities)
	require.NotNil(t, data.Restaurants.ByLocation)
	require.NotNil(t, data.Pins.Items)
	require.Nil(t, data.Extended)
	require.Nil(t, data.LuggageTags)
}

func TestNormalizeTrip_AlternateNames(t *testing.T) {
	got := normalizeTrip(json.RawMessage(`{
		"name": "Japan", "startDate": "Oct 1", "endDate": "Oct 12",
		"durationDays": 12, "vibe": "autumn"
	}`))
	require.Equal(t, "Japan", got.Title)
	require.Equal(t, "Oct 1 – Oct 12", got.Dates)
	require.Equal(t, 12, got.DurationDays)
	require.Equal(t, 11, got.DurationNights)
	require.Contains(t, got.Extensions, "vibe")
}

func TestNormalizeTrip_ExplicitNightsWin(t *testing.T) {
	got := normalizeTrip(json.RawMessage(`{"title": "X", "durationDays": 10, "durationNights": 8}`))
	require.Equal(t, 8, got.DurationNights)
}

func TestNormalizeDays_SortedWithDefaults(t *testing.T) {
	days := normalizeDays(json.RawMessage(`[
		{"day": 3, "title": "C", "dateLabel": "Wed"},
		{"day": 1, "title": "A", "date": "Mon 1"},
		{"day": 2, "title": "B", "stay": {"city": "Kyoto", "area": "Gion"}}
	]`))
	require.Len(t, days, 3)
	require.Equal(t, []int{1, 2, 3}, []int{days[0].Day, days[1].Day, days[2].Day})
	require.Equal(t, "Mon 1", days[0].DateLabel)
	require.Equal(t, "default", days[0].Region)
	require.Equal(t, "car", days[0].Transport.Mode)
	require.Equal(t, "Kyoto (Gion)", days[1].Stay)
	require.NotNil(t, days[0].Activities)
	require.NotNil(t, days[0].Highlights)
}

func TestNormalizeHighlights_SynthesizedFromActivities(t *testing.T) {
	got := normalizeHighlights(nil, json.RawMessage(
		`[{"name": "A"}, {"name": "B"}, {"name": "C"}, {"name": "D"}, {"name": "E"}]`,
	))
	require.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestNormalizeHighlights_BlankNamesShrinkSynthesis(t *testing.T) {
	// Only the first four activities are candidates; a blank name among
	// them yields a shorter list, it does not promote a later activity.
	got := normalizeHighlights(nil, json.RawMessage(
		`[{"name": ""}, {"name": "B"}, {"name": "C"}, {"name": "D"}, {"name": "E"}]`,
	))
	require.Equal(t, []string{"B", "C", "D"}, got)
}

func TestNormalizeHighlights_SynthesisPrefersTitle(t *testing.T) {
	got := normalizeHighlights(nil, json.RawMessage(
		`[{"title": "Grand Shrine", "name": "shrine stop"}, {"name": "Market"}]`,
	))
	require.Equal(t, []string{"Grand Shrine", "Market"}, got)
}

func TestNormalizeHighlights_RepairsStringifiedRecords(t *testing.T) {
	got := normalizeHighlights(json.RawMessage(
		`["Fushimi Inari", "{'name': 'Senso-ji Temple', 'time': '09:00'}", {"name": "Dotonbori"}]`,
	), nil)
	require.Equal(t, []string{"Fushimi Inari", "Senso-ji Temple", "Dotonbori"}, got)
}

func TestNormalizeActivities_NameAndNoteFallbacks(t *testing.T) {
	got := normalizeActivities(json.RawMessage(
		`[{"time": "09:00", "title": "Market walk", "details": "cash only"}]`,
	))
	require.Len(t, got, 1)
	require.Equal(t, "Market walk", got[0].Name)
	require.Equal(t, "cash only", got[0].Note)
	require.Equal(t, "activity", got[0].Type)
}

func TestNormalizeStats_Parsing(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		want   float64
		suffix string
	}{
		{name: "formatted distance", value: `"2,000 km"`, want: 2000, suffix: "km"},
		{name: "count with plus", value: `"4+"`, want: 4, suffix: "+"},
		{name: "plain number", value: `42`, want: 42, suffix: ""},
		{name: "no leading number", value: `"lots"`, want: 0, suffix: "lots"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := normalizeStats(json.RawMessage(`[{"value": ` + tc.value + `, "label": "x"}]`))
			require.Len(t, stats, 1)
			require.Equal(t, tc.want, stats[0].Value)
			require.Equal(t, tc.suffix, stats[0].Suffix)
		})
	}
}

func TestNormalizePacking_Flattens(t *testing.T) {
	flat := normalizePacking(json.RawMessage(`["socks", "charger"]`))
	require.Equal(t, []string{"socks", "charger"}, flat)

	grouped := normalizePacking(json.RawMessage(
		`[{"category": "tech", "items": ["charger"]}, {"category": "clothes", "items": ["socks", "hat"]}]`,
	))
	require.Equal(t, []string{"charger", "socks", "hat"}, grouped)
}

func TestNormalizeBookings_PriorityTable(t *testing.T) {
	cases := []struct {
		raw  string
		want BookingPriority
	}{
		{raw: "essential", want: PriorityCritical},
		{raw: "recommended", want: PriorityHigh},
		{raw: "optional", want: PriorityLow},
		{raw: "critical", want: PriorityCritical},
		{raw: "urgent-thing", want: PriorityMedium},
	}

	for _, tc := range cases {
		bookings := normalizeBookings(json.RawMessage(`[{"item": "x", "priority": "` + tc.raw + `"}]`))
		require.Len(t, bookings, 1)
		require.Equal(t, tc.want, bookings[0].Priority, "priority %q", tc.raw)
	}
}

func TestNormalizeTravels_ModeTable(t *testing.T) {
	cases := []struct {
		raw  string
		want TravelMode
	}{
		{raw: "flight", want: ModePlane},
		{raw: "plane", want: ModePlane},
		{raw: "rental car", want: ModeBus},
		{raw: "train", want: ModeTrain},
		{raw: "shinkansen", want: ModeShinkansen},
		{raw: "scooter", want: ModeBus},
		{raw: "", want: ModeBus},
	}

	for _, tc := range cases {
		legs := normalizeTravels(json.RawMessage(`[{"day": 1, "mode": "` + tc.raw + `"}]`))
		require.Len(t, legs, 1)
		require.Equal(t, tc.want, legs[0].Mode, "mode %q", tc.raw)
	}
}

func TestNormalizeTravels_PointsCostAndID(t *testing.T) {
	legs := normalizeTravels(json.RawMessage(`[
		{"day": 1, "from": "Tokyo", "to": {"name": "Kyoto", "code": "KYO"}, "cost": 13000},
		{"day": 2, "from": "Kyoto", "to": "Nara", "method": "train", "cost": "covered by pass"}
	]`))
	require.Len(t, legs, 2)

	require.Equal(t, "travel-0", legs[0].ID)
	require.Equal(t, TravelPoint{Name: "Tokyo"}, legs[0].From)
	require.Equal(t, "Kyoto", legs[0].To.Name)
	require.Equal(t, "KYO", legs[0].To.Code)
	require.NotNil(t, legs[0].Cost)
	require.Equal(t, 13000.0, *legs[0].Cost)

	require.Equal(t, "travel-1", legs[1].ID)
	require.Equal(t, ModeTrain, legs[1].Mode)
	require.Nil(t, legs[1].Cost)
}

func TestNormalizeLuggageTags_DayKeys(t *testing.T) {
	tags := normalizeLuggageTags(json.RawMessage(`{
		"days": {"day3": {"angle": 2}, "day11": {"angle": 1}},
		"hotelKeys": {"day1": "tokyo", "hotelA": "kyoto"}
	}`))
	require.NotNil(t, tags)
	require.Contains(t, tags.Days, "03")
	require.Contains(t, tags.Days, "11")
	require.NotContains(t, tags.Days, "day3")
	require.Equal(t, "tokyo", tags.HotelKeys["01"])
	require.Equal(t, "kyoto", tags.HotelKeys["hotelA"])
}

func TestNormalizeBudget_AlternateShape(t *testing.T) {
	budget := normalizeBudget(json.RawMessage(`{
		"breakdown": {"food": {"amount": 800, "note": "groceries"}},
		"total": 2400,
		"tips": ["Book early", "Use card"]
	}`))
	require.Equal(t, "USD", budget.Currency)
	require.Contains(t, budget.PerPerson, "food")
	require.Equal(t, 800.0, budget.PerPerson["food"].Amount.Number)
	require.Equal(t, "2400", budget.TotalPerPerson)
	require.Equal(t, "2400", budget.TotalGroup)
	require.Equal(t, "Book early. Use card", budget.Note)
}

func TestNormalizeBudget_TextAmountsSurvive(t *testing.T) {
	budget := normalizeBudget(json.RawMessage(`{
		"perPerson": {"lodging": {"amount": "300-400", "note": "seasonal"}},
		"currency": "EUR"
	}`))
	require.Equal(t, "EUR", budget.Currency)
	amount := budget.PerPerson["lodging"].Amount
	require.True(t, amount.IsText)
	require.Equal(t, "300-400", amount.Text)

	out, err := json.Marshal(amount)
	require.NoError(t, err)
	require.Equal(t, `"300-400"`, string(out))
}

func TestNormalizeDietary_SignatureDetection(t *testing.T) {
	canonical := normalizeDietary(json.RawMessage(`{
		"restrictions": ["gluten-free"],
		"japanesePhrases": [{"japanese": "X", "meaning": "Y"}],
		"safeFoods": ["rice"]
	}`))
	require.Equal(t, []string{"gluten-free"}, canonical.Restrictions)
	require.Len(t, canonical.Phrases, 1)
	require.Equal(t, []string{"rice"}, canonical.SafeFoods)

	generic := normalizeDietary(json.RawMessage(`{
		"requirements": ["vegan"],
		"apps": ["HappyCow"]
	}`))
	require.Equal(t, []string{"vegan"}, generic.Restrictions)
	require.Empty(t, generic.Phrases)
	require.Contains(t, generic.Extensions, "apps")
}

func TestNormalizeTransport_SignatureDetection(t *testing.T) {
	canonical := normalizeTransport(json.RawMessage(`{
		"jrPassAnalysis": {"sevenDay": 50000, "recommendation": "skip"},
		"suicaCard": "get one"
	}`))
	require.Equal(t, 50000.0, canonical.RailPass.SevenDay)
	require.Equal(t, "get one", canonical.TransitCard)

	generic := normalizeTransport(json.RawMessage(`{"rentalCar": {"type": "4x4"}}`))
	require.Zero(t, generic.RailPass.SevenDay)
	require.Contains(t, generic.Extensions, "rentalCar")
}

func TestNormalizeHotels_AlternateShape(t *testing.T) {
	hotels := normalizeHotels(json.RawMessage(`{
		"budget": "mid-range",
		"reykjavik": {"location": "Reykjavik", "nights": 3,
			"options": [{"name": "Kvosin", "price": "210", "rooftopBar": true}]},
		"vik": {"location": "Vik", "nights": 2, "options": []},
		"bookingTip": "refundable rates"
	}`))
	require.Equal(t, "mid-range", hotels.Budget)
	require.Equal(t, []string{"reykjavik", "vik"}, hotels.CityOrder())
	require.Contains(t, hotels.Extensions, "bookingTip")

	city := hotels.Cities["reykjavik"]
	require.Len(t, city.Options, 1)
	require.Equal(t, "210", city.Options[0].PriceEUR)
	require.False(t, city.Options[0].TravellerPick)
	require.Contains(t, city.Options[0].Extensions, "rooftopBar")
}

func TestNormalizeHotels_CanonicalShape(t *testing.T) {
	hotels := normalizeHotels(json.RawMessage(`{
		"note": "book ahead",
		"cities": {"tokyo": {"location": "Tokyo", "options": [{"name": "Hoshinoya", "priceEUR": "600"}]}}
	}`))
	require.Equal(t, "book ahead", hotels.Note)
	require.Equal(t, []string{"tokyo"}, hotels.CityOrder())
	require.Equal(t, "600", hotels.Cities["tokyo"].Options[0].PriceEUR)
}

func TestNormalizeRestaurants_GenericShape(t *testing.T) {
	restaurants := normalizeRestaurants(json.RawMessage(`{
		"note": "check hours",
		"south-coast": [{"name": "Halldorskaffi", "dietary": {"glutenFree": true, "vegan": false}, "note": "great lamb"}],
		"reykjavik": [{"name": "Messinn", "nameLocal": "メッシン", "mustTry": "fish pan"}],
		"reservationApp": "Dineout"
	}`))
	require.Equal(t, "check hours", restaurants.Note)
	require.Equal(t, []string{"south-coast", "reykjavik"}, restaurants.LocationOrder())
	require.Contains(t, restaurants.Extensions, "reservationApp")

	south := restaurants.ByLocation["south-coast"]
	require.Equal(t, "South Coast", south.Label)
	require.Empty(t, south.ForDays)
	require.Len(t, south.Spots, 1)
	require.True(t, south.Spots[0].GlutenFree)
	require.Equal(t, "great lamb", south.Spots[0].MustTry)
	require.Equal(t, "great lamb", south.Spots[0].Note)

	require.Equal(t, "メッシン", restaurants.ByLocation["reykjavik"].Spots[0].NameLocal)
}

func TestNormalizeExtended(t *testing.T) {
	ext := normalizeExtended(json.RawMessage(`{
		"splitDay": 8,
		"travelers": 2,
		"days": [{"day": 9, "title": "Osaka solo"}],
		"travels": [{"day": 9, "mode": "shinkansen"}],
		"restaurants": {"osaka": [{"name": "Mizuno"}]},
		"returnFlight": {"from": "KIX", "to": "AMS", "date": "Oct 20"}
	}`))
	require.NotNil(t, ext)
	require.Equal(t, 8, ext.SplitDay)
	require.Len(t, ext.Days, 1)
	require.Equal(t, "default", ext.Days[0].Region)
	require.Len(t, ext.Travels, 1)
	require.Equal(t, ModeShinkansen, ext.Travels[0].Mode)
	require.Equal(t, []string{"osaka"}, ext.Restaurants.LocationOrder())
	require.Equal(t, "KIX", ext.ReturnFlight.From)

	require.Nil(t, normalizeExtended(nil))
}

func TestNormalize_UnknownFieldsPreserved(t *testing.T) {
	doc := mustDoc(t, `{
		"trip": {"title": "Japan", "vibe": "neon"},
		"days": [{"day": 1, "title": "Tokyo", "soundtrack": "city pop"}],
		"pins": {"items": []}
	}`)
	data := Normalize(doc)

	require.JSONEq(t, `"neon"`, string(data.Trip.Extensions["vibe"]))
	require.JSONEq(t, `"city pop"`, string(data.Days[0].Extensions["soundtrack"]))

	// Extensions survive a serialize/normalize round trip.
	out, err := json.Marshal(data)
	require.NoError(t, err)
	redecoded, err := DecodeDocument(out)
	require.NoError(t, err)
	again := Normalize(redecoded)
	require.JSONEq(t, `"neon"`, string(again.Trip.Extensions["vibe"]))
	require.JSONEq(t, `"city pop"`, string(again.Days[0].Extensions["soundtrack"]))
}
