package trip

import (
	"encoding/json"
	"fmt"
)

// ValidateShape gates a raw document before normalization. It checks only
// the three structures every normalizer assumes exist: a trip object, a
// days array with numeric day and string title per entry, and a pins
// object whose items carry numeric lat/lng. Everything else may be absent
// or arbitrarily shaped.
func ValidateShape(raw RawDocument) error {
	tripRaw, ok := raw["trip"]
	if !ok || isNull(tripRaw) {
		return &ShapeError{Check: "trip", Detail: "missing trip object"}
	}
	if !isObject(tripRaw) {
		return &ShapeError{Check: "trip", Detail: "trip must be an object"}
	}

	daysRaw, ok := raw["days"]
	if !ok || isNull(daysRaw) {
		return &ShapeError{Check: "days", Detail: "missing days array"}
	}
	if !isArray(daysRaw) {
		return &ShapeError{Check: "days", Detail: "days must be an array"}
	}
	var days []map[string]json.RawMessage
	if err := json.Unmarshal(daysRaw, &days); err != nil {
		return &ShapeError{Check: "days", Detail: "days entries must be objects"}
	}
	for i, day := range days {
		if !isNumber(day["day"]) {
			return &ShapeError{Check: "days", Detail: fmt.Sprintf("days[%d]: missing numeric day", i)}
		}
		if !isString(day["title"]) {
			return &ShapeError{Check: "days", Detail: fmt.Sprintf("days[%d]: missing string title", i)}
		}
	}

	pinsRaw, ok := raw["pins"]
	if !ok || isNull(pinsRaw) {
		return &ShapeError{Check: "pins", Detail: "missing pins object"}
	}
	pins, ok := decodeObject(pinsRaw)
	if !ok {
		return &ShapeError{Check: "pins", Detail: "pins must be an object"}
	}
	itemsRaw, ok := pins["items"]
	if !ok || !isArray(itemsRaw) {
		return &ShapeError{Check: "pins", Detail: "missing pins.items array"}
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return &ShapeError{Check: "pins", Detail: "pins.items entries must be objects"}
	}
	for i, item := range items {
		if !isNumber(item["lat"]) {
			return &ShapeError{Check: "pins", Detail: fmt.Sprintf("pins.items[%d]: missing numeric lat", i)}
		}
		if !isNumber(item["lng"]) {
			return &ShapeError{Check: "pins", Detail: fmt.Sprintf("pins.items[%d]: missing numeric lng", i)}
		}
	}

	return nil
}

func isNumber(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil
}

func isString(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	var s string
	return json.Unmarshal(raw, &s) == nil
}
