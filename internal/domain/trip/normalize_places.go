package trip

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

func normalizeHotels(raw json.RawMessage) Hotels {
	hotels := Hotels{Cities: map[string]HotelCity{}, cityOrder: []string{}}
	obj, ok := decodeObject(raw)
	if !ok {
		return hotels
	}

	var top struct {
		Budget          string           `json:"budget"`
		Note            string           `json:"note"`
		UserPreferences *UserPreferences `json:"userPreferences"`
	}
	_ = json.Unmarshal(raw, &top)
	hotels.Budget = top.Budget
	hotels.Note = top.Note
	if top.UserPreferences != nil {
		hotels.UserPreferences = *top.UserPreferences
	}

	// Canonical shape keeps the per-stay entries under a cities object.
	if citiesRaw, present := obj["cities"]; present && isObject(citiesRaw) {
		citiesObj, _ := decodeObject(citiesRaw)
		for _, key := range objectKeys(citiesRaw) {
			hotels.Cities[key] = normalizeHotelCity(citiesObj[key])
			hotels.cityOrder = append(hotels.cityOrder, key)
		}
		hotels.Extensions = collectExtensions(obj, "budget", "note", "userPreferences", "cities")
		return hotels
	}

	// Alternate shape mixes the stay entries into the top level: any object
	// value carrying an options array is a stay.
	known := []string{"budget", "note", "userPreferences"}
	for _, key := range objectKeys(raw) {
		val := obj[key]
		entry, isObj := decodeObject(val)
		if !isObj {
			continue
		}
		if _, hasOptions := entry["options"]; !hasOptions {
			continue
		}
		hotels.Cities[key] = normalizeHotelCity(val)
		hotels.cityOrder = append(hotels.cityOrder, key)
		known = append(known, key)
	}
	hotels.Extensions = collectExtensions(obj, known...)
	return hotels
}

func normalizeHotelCity(raw json.RawMessage) HotelCity {
	obj, ok := decodeObject(raw)
	if !ok {
		return HotelCity{Options: []HotelOption{}}
	}

	var decoded struct {
		StayID       string            `json:"stayId"`
		Location     string            `json:"location"`
		Nights       int               `json:"nights"`
		Dates        string            `json:"dates"`
		Purpose      string            `json:"purpose"`
		Options      []json.RawMessage `json:"options"`
		CheckIn      string            `json:"checkIn"`
		CheckOut     string            `json:"checkOut"`
		SearchParams json.RawMessage   `json:"searchParams"`
		PricingNote  string            `json:"pricingNote"`
	}
	_ = json.Unmarshal(raw, &decoded)

	options := []HotelOption{}
	for _, optRaw := range decoded.Options {
		options = append(options, normalizeHotelOption(optRaw))
	}

	return HotelCity{
		StayID:       decoded.StayID,
		Location:     decoded.Location,
		Nights:       decoded.Nights,
		Dates:        decoded.Dates,
		Purpose:      decoded.Purpose,
		Options:      options,
		CheckIn:      decoded.CheckIn,
		CheckOut:     decoded.CheckOut,
		SearchParams: passthrough(decoded.SearchParams),
		PricingNote:  decoded.PricingNote,
		Extensions: collectExtensions(obj,
			"stayId", "location", "nights", "dates", "purpose", "options",
			"checkIn", "checkOut", "searchParams", "pricingNote"),
	}
}

func normalizeHotelOption(raw json.RawMessage) HotelOption {
	obj, _ := decodeObject(raw)

	var decoded HotelOption
	_ = json.Unmarshal(raw, &decoded)
	if decoded.PriceEUR == "" {
		decoded.PriceEUR = stringOrNumber(obj["price"])
	}
	decoded.Extensions = collectExtensions(obj,
		"name", "nameJp", "type", "priceEUR", "price", "priceJPY", "style",
		"location", "neighborhood", "highlights", "url", "travellerPick",
		"pickReason", "bookingUrl", "officialUrl", "totalPerRoom",
		"ryokanDetails", "dietaryNote")
	return decoded
}

func normalizeRestaurants(raw json.RawMessage) Restaurants {
	restaurants := Restaurants{
		SafeFoods:     []string{},
		DangerFoods:   []string{},
		Apps:          []string{},
		ByLocation:    map[string]RestaurantLocation{},
		locationOrder: []string{},
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return restaurants
	}

	var top struct {
		Note             string   `json:"note"`
		AllergyCardLocal string   `json:"allergyCardJp"`
		AllergyCardEN    string   `json:"allergyCardEn"`
		SafeFoods        []string `json:"safeFoods"`
		DangerFoods      []string `json:"dangerFoods"`
		Apps             []string `json:"apps"`
	}
	_ = json.Unmarshal(raw, &top)
	restaurants.Note = top.Note
	restaurants.AllergyCardLocal = top.AllergyCardLocal
	restaurants.AllergyCardEN = top.AllergyCardEN
	restaurants.SafeFoods = orEmpty(top.SafeFoods)
	restaurants.DangerFoods = orEmpty(top.DangerFoods)
	restaurants.Apps = orEmpty(top.Apps)

	if byLocationRaw, present := obj["byLocation"]; present && isObject(byLocationRaw) {
		locations, _ := decodeObject(byLocationRaw)
		for _, key := range objectKeys(byLocationRaw) {
			var loc RestaurantLocation
			_ = json.Unmarshal(locations[key], &loc)
			if loc.ForDays == nil {
				loc.ForDays = []int{}
			}
			if loc.Spots == nil {
				loc.Spots = []RestaurantSpot{}
			}
			restaurants.ByLocation[key] = loc
			restaurants.locationOrder = append(restaurants.locationOrder, key)
		}
		restaurants.Extensions = collectExtensions(obj,
			"note", "allergyCardJp", "allergyCardEn", "safeFoods",
			"dangerFoods", "apps", "byLocation")
		return restaurants
	}

	// Generic shape: region keys mapping straight to arrays of spots.
	known := []string{"note", "allergyCardJp", "allergyCardEn", "safeFoods", "dangerFoods", "apps"}
	for _, key := range objectKeys(raw) {
		if !isArray(obj[key]) {
			continue
		}
		var entries []struct {
			Name         string `json:"name"`
			NameLocal    string `json:"nameJp"`
			NameAlt      string `json:"nameLocal"`
			Cuisine      string `json:"cuisine"`
			Neighborhood string `json:"neighborhood"`
			Price        string `json:"price"`
			Dietary      struct {
				GlutenFree bool `json:"glutenFree"`
				Vegan      bool `json:"vegan"`
				Vegetarian bool `json:"vegetarian"`
			} `json:"dietary"`
			MustTry string `json:"mustTry"`
			Note    string `json:"note"`
			URL     string `json:"url"`
		}
		if err := json.Unmarshal(obj[key], &entries); err != nil {
			continue
		}
		spots := []RestaurantSpot{}
		for _, entry := range entries {
			nameLocal := entry.NameLocal
			if nameLocal == "" {
				nameLocal = entry.NameAlt
			}
			mustTry := entry.MustTry
			if mustTry == "" {
				mustTry = entry.Note
			}
			spots = append(spots, RestaurantSpot{
				Name:         entry.Name,
				NameLocal:    nameLocal,
				Cuisine:      entry.Cuisine,
				Neighborhood: entry.Neighborhood,
				Price:        entry.Price,
				GlutenFree:   entry.Dietary.GlutenFree,
				Vegan:        entry.Dietary.Vegan,
				Vegetarian:   entry.Dietary.Vegetarian,
				MustTry:      mustTry,
				Note:         entry.Note,
				URL:          entry.URL,
			})
		}
		restaurants.ByLocation[key] = RestaurantLocation{
			Label:   locationLabel(key),
			ForDays: []int{},
			Spots:   spots,
		}
		restaurants.locationOrder = append(restaurants.locationOrder, key)
		known = append(known, key)
	}
	restaurants.Extensions = collectExtensions(obj, known...)
	return restaurants
}

// locationLabel turns a region key like "tokyo-area" into "Tokyo Area".
func locationLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", " "), " ")
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}

var travelModes = map[string]TravelMode{
	"rental car": ModeBus,
	"car":        ModeBus,
	"flight":     ModePlane,
	"plane":      ModePlane,
	"train":      ModeTrain,
	"shinkansen": ModeShinkansen,
	"bus":        ModeBus,
	"bike":       ModeBike,
}

func normalizeTravels(raw json.RawMessage) []TravelLeg {
	legs := []TravelLeg{}
	if isNull(raw) {
		return legs
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return legs
	}
	for i, entry := range entries {
		obj, ok := decodeObject(entry)
		if !ok {
			continue
		}
		var decoded struct {
			ID        string          `json:"id"`
			Day       int             `json:"day"`
			From      json.RawMessage `json:"from"`
			To        json.RawMessage `json:"to"`
			Mode      string          `json:"mode"`
			Method    string          `json:"method"`
			Icon      string          `json:"icon"`
			Carrier   string          `json:"carrier"`
			Line      string          `json:"line"`
			Route     string          `json:"route"`
			Duration  string          `json:"duration"`
			Distance  string          `json:"distance"`
			Cost      json.RawMessage `json:"cost"`
			CostNote  string          `json:"costNote"`
			RoundTrip bool            `json:"roundTrip"`
			Via       []string        `json:"via"`
			Details   string          `json:"details"`
			Animation string          `json:"animation"`
		}
		_ = json.Unmarshal(entry, &decoded)

		id := decoded.ID
		if id == "" {
			id = fmt.Sprintf("travel-%d", i)
		}
		modeKey := decoded.Mode
		if modeKey == "" {
			modeKey = decoded.Method
		}
		mode, knownMode := travelModes[modeKey]
		if !knownMode {
			mode = ModeBus
		}

		// Only numeric costs survive; anything else renders as unknown.
		var cost *float64
		if !isNull(decoded.Cost) {
			var n float64
			if err := json.Unmarshal(decoded.Cost, &n); err == nil {
				cost = &n
			}
		}

		legs = append(legs, TravelLeg{
			ID:        id,
			Day:       decoded.Day,
			From:      normalizeTravelPoint(decoded.From),
			To:        normalizeTravelPoint(decoded.To),
			Mode:      mode,
			Icon:      decoded.Icon,
			Carrier:   decoded.Carrier,
			Line:      decoded.Line,
			Route:     decoded.Route,
			Duration:  decoded.Duration,
			Distance:  decoded.Distance,
			Cost:      cost,
			CostNote:  decoded.CostNote,
			RoundTrip: decoded.RoundTrip,
			Via:       decoded.Via,
			Details:   decoded.Details,
			Animation: decoded.Animation,
			Extensions: collectExtensions(obj,
				"id", "day", "from", "to", "mode", "method", "icon",
				"carrier", "line", "route", "duration", "distance", "cost",
				"costNote", "roundTrip", "via", "details", "animation"),
		})
	}
	return legs
}

// normalizeTravelPoint accepts a bare place name or a full point object.
func normalizeTravelPoint(raw json.RawMessage) TravelPoint {
	if isNull(raw) {
		return TravelPoint{}
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return TravelPoint{Name: name}
	}
	var point TravelPoint
	_ = json.Unmarshal(raw, &point)
	return point
}

func normalizeStays(raw json.RawMessage) []Stay {
	stays := []Stay{}
	if isNull(raw) {
		return stays
	}
	_ = json.Unmarshal(raw, &stays)
	if stays == nil {
		stays = []Stay{}
	}
	return stays
}

func normalizePins(raw json.RawMessage) PinsData {
	var pins PinsData
	if !isNull(raw) {
		_ = json.Unmarshal(raw, &pins)
	}
	if pins.Items == nil {
		pins.Items = []Pin{}
	}
	if pins.Categories == nil {
		pins.Categories = []string{}
	}
	if pins.Regions == nil {
		pins.Regions = []string{}
	}
	return pins
}

func normalizeExtended(raw json.RawMessage) *ExtendedTrip {
	obj, ok := decodeObject(raw)
	if !ok {
		return nil
	}

	var decoded struct {
		Note            string          `json:"note"`
		Travelers       int             `json:"travelers"`
		Rooms           int             `json:"rooms"`
		SplitDay        int             `json:"splitDay"`
		SplitDate       string          `json:"splitDate"`
		SplitNote       string          `json:"splitNote"`
		Dates           string          `json:"dates"`
		ExtendedDays    int             `json:"extendedDays"`
		ExtendedNights  int             `json:"extendedNights"`
		DietaryReminder string          `json:"dietaryReminder"`
		ReturnFlight    FlightLeg       `json:"returnFlight"`
		Stays           json.RawMessage `json:"stays"`
		PracticalTips   json.RawMessage `json:"practicalTips"`
	}
	_ = json.Unmarshal(raw, &decoded)

	return &ExtendedTrip{
		Note:            decoded.Note,
		Travelers:       decoded.Travelers,
		Rooms:           decoded.Rooms,
		SplitDay:        decoded.SplitDay,
		SplitDate:       decoded.SplitDate,
		SplitNote:       decoded.SplitNote,
		Dates:           decoded.Dates,
		ExtendedDays:    decoded.ExtendedDays,
		ExtendedNights:  decoded.ExtendedNights,
		DietaryReminder: decoded.DietaryReminder,
		ReturnFlight:    decoded.ReturnFlight,
		Stays:           normalizeStays(decoded.Stays),
		Days:            normalizeDays(obj["days"]),
		Travels:         normalizeTravels(obj["travels"]),
		Restaurants:     normalizeRestaurants(obj["restaurants"]),
		PracticalTips:   passthrough(decoded.PracticalTips),
		Extensions: collectExtensions(obj,
			"note", "travelers", "rooms", "splitDay", "splitDate",
			"splitNote", "dates", "extendedDays", "extendedNights",
			"dietaryReminder", "returnFlight", "stays", "days", "travels",
			"restaurants", "practicalTips"),
	}
}
