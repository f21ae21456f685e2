package trip

import "encoding/json"

// Normalize converts a validated raw document into the canonical model.
// Each field normalizer runs exactly once and never fails: absent or
// malformed sections degrade to their documented defaults. Enrichment
// sections without a normalizer pass through untouched.
func Normalize(raw RawDocument) *TripData {
	return &TripData{
		Trip:        normalizeTrip(raw["trip"]),
		Stays:       normalizeStays(raw["stays"]),
		Days:        normalizeDays(raw["days"]),
		Dietary:     normalizeDietary(raw["dietary"]),
		Transport:   normalizeTransport(raw["transport"]),
		Bookings:    normalizeBookings(raw["bookings"]),
		Budget:      normalizeBudget(raw["budget"]),
		Packing:     normalizePacking(raw["packing"]),
		Stats:       normalizeStats(raw["stats"]),
		Hotels:      normalizeHotels(raw["hotels"]),
		Travels:     normalizeTravels(raw["travels"]),
		Restaurants: normalizeRestaurants(raw["restaurants"]),
		Pins:        normalizePins(raw["pins"]),
		Extended:    normalizeExtended(raw["extended"]),
		LuggageTags: normalizeLuggageTags(raw["luggageTags"]),

		Routes:       passthrough(raw["routes"]),
		MapConfig:    passthrough(raw["mapConfig"]),
		RegionStyles: passthrough(raw["regionStyles"]),
		RouteStops:   passthrough(raw["routeStops"]),
		Capabilities: passthrough(raw["capabilities"]),
		Theme:        passthrough(raw["theme"]),
		Stickers:     passthrough(raw["stickers"]),
		Weather:      passthrough(raw["weather"]),
		Currency:     passthrough(raw["currency"]),
		Polaroids:    passthrough(raw["polaroids"]),
	}
}

func passthrough(raw json.RawMessage) json.RawMessage {
	if isNull(raw) {
		return nil
	}
	return raw
}
