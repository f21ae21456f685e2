package trip

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const placeholderTitle = "Untitled Trip"

func normalizeTrip(raw json.RawMessage) Trip {
	obj, _ := decodeObject(raw)

	var decoded struct {
		Title          string   `json:"title"`
		Name           string   `json:"name"`
		TitleLocal     string   `json:"titleJp"`
		Dates          string   `json:"dates"`
		StartDate      string   `json:"startDate"`
		EndDate        string   `json:"endDate"`
		Travelers      int      `json:"travelers"`
		DurationDays   *int     `json:"durationDays"`
		DurationNights *int     `json:"durationNights"`
		Origin         string   `json:"origin"`
		Flights        *Flights `json:"flights"`
		Dietary        []string `json:"dietary"`
		Route          []string `json:"route"`
	}
	_ = json.Unmarshal(raw, &decoded)

	title := decoded.Title
	if title == "" {
		title = decoded.Name
	}
	if title == "" {
		title = placeholderTitle
	}

	dates := decoded.Dates
	if dates == "" {
		dates = strings.TrimSpace(decoded.StartDate + " – " + decoded.EndDate)
	}

	travelers := decoded.Travelers
	if travelers == 0 {
		travelers = 1
	}

	durationDays := 1
	if decoded.DurationDays != nil && *decoded.DurationDays != 0 {
		durationDays = *decoded.DurationDays
	}
	durationNights := 0
	switch {
	case decoded.DurationNights != nil:
		durationNights = *decoded.DurationNights
	case decoded.DurationDays != nil && *decoded.DurationDays != 0:
		durationNights = *decoded.DurationDays - 1
	}

	flights := Flights{}
	if decoded.Flights != nil {
		flights = *decoded.Flights
	}

	return Trip{
		Title:          title,
		TitleLocal:     decoded.TitleLocal,
		Dates:          dates,
		Travelers:      travelers,
		DurationDays:   durationDays,
		DurationNights: durationNights,
		Origin:         decoded.Origin,
		Flights:        flights,
		Dietary:        orEmpty(decoded.Dietary),
		Route:          orEmpty(decoded.Route),
		Extensions: collectExtensions(obj,
			"title", "name", "titleJp", "dates", "startDate", "endDate",
			"travelers", "durationDays", "durationNights", "origin",
			"flights", "dietary", "route"),
	}
}

var statNumberRe = regexp.MustCompile(`^[\d,]+`)

func normalizeStats(raw json.RawMessage) []Stat {
	stats := []Stat{}
	if isNull(raw) {
		return stats
	}
	var entries []struct {
		Value  json.RawMessage `json:"value"`
		Label  string          `json:"label"`
		Suffix string          `json:"suffix"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return stats
	}
	for _, entry := range entries {
		var number float64
		if err := json.Unmarshal(entry.Value, &number); err == nil {
			stats = append(stats, Stat{Value: number, Label: entry.Label, Suffix: entry.Suffix})
			continue
		}

		// Formatted strings like "2,000 km" or "4+": the leading numeric
		// run is the value, the trimmed remainder is the suffix.
		var text string
		if err := json.Unmarshal(entry.Value, &text); err != nil {
			stats = append(stats, Stat{Label: entry.Label, Suffix: entry.Suffix})
			continue
		}
		match := statNumberRe.FindString(text)
		value := 0.0
		if match != "" {
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
			if err == nil {
				value = parsed
			}
		}
		suffix := strings.TrimSpace(strings.TrimPrefix(text, match))
		if suffix == "" {
			suffix = entry.Suffix
		}
		stats = append(stats, Stat{Value: value, Label: entry.Label, Suffix: suffix})
	}
	return stats
}

func normalizePacking(raw json.RawMessage) []string {
	items := []string{}
	if isNull(raw) || !isArray(raw) {
		return items
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return items
	}

	// Flat list of item strings.
	if isString(entries[0]) {
		for _, entry := range entries {
			var item string
			if err := json.Unmarshal(entry, &item); err == nil {
				items = append(items, item)
			}
		}
		return items
	}

	// Grouped form [{category, items}]: flatten, category labels are not
	// surfaced downstream.
	for _, entry := range entries {
		var group struct {
			Items []string `json:"items"`
		}
		if err := json.Unmarshal(entry, &group); err == nil {
			items = append(items, group.Items...)
		}
	}
	return items
}

var bookingPriorities = map[string]BookingPriority{
	"essential":   PriorityCritical,
	"recommended": PriorityHigh,
	"optional":    PriorityLow,
	"critical":    PriorityCritical,
	"high":        PriorityHigh,
	"medium":      PriorityMedium,
	"low":         PriorityLow,
}

func normalizeBookings(raw json.RawMessage) []Booking {
	bookings := []Booking{}
	if isNull(raw) {
		return bookings
	}
	var entries []struct {
		Item     string `json:"item"`
		When     string `json:"when"`
		Priority string `json:"priority"`
		URL      string `json:"url"`
		Note     string `json:"note"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return bookings
	}
	for _, entry := range entries {
		priority, ok := bookingPriorities[entry.Priority]
		if !ok {
			priority = PriorityMedium
		}
		bookings = append(bookings, Booking{
			Item:     entry.Item,
			When:     entry.When,
			Priority: priority,
			URL:      entry.URL,
			Note:     entry.Note,
		})
	}
	return bookings
}

func normalizeBudget(raw json.RawMessage) Budget {
	budget := Budget{Currency: "USD", PerPerson: map[string]BudgetItem{}}
	obj, ok := decodeObject(raw)
	if !ok {
		return budget
	}

	// Canonical shape is signalled by a perPerson object.
	if perPerson, present := obj["perPerson"]; present && isObject(perPerson) {
		var decoded struct {
			Currency          string                `json:"currency"`
			PerPerson         map[string]BudgetItem `json:"perPerson"`
			TotalPerPerson    string                `json:"totalPerPerson"`
			TotalPerPersonUSD string                `json:"totalPerPersonUSD"`
			TotalGroup        string                `json:"totalGroup"`
			TotalGroupUSD     string                `json:"totalGroupUSD"`
			Note              string                `json:"note"`
		}
		_ = json.Unmarshal(raw, &decoded)
		if decoded.Currency != "" {
			budget.Currency = decoded.Currency
		}
		if decoded.PerPerson != nil {
			budget.PerPerson = decoded.PerPerson
		}
		budget.TotalPerPerson = decoded.TotalPerPerson
		budget.TotalPerPersonUSD = decoded.TotalPerPersonUSD
		budget.TotalGroup = decoded.TotalGroup
		budget.TotalGroupUSD = decoded.TotalGroupUSD
		budget.Note = decoded.Note
		budget.Extensions = collectExtensions(obj,
			"currency", "perPerson", "totalPerPerson", "totalPerPersonUSD",
			"totalGroup", "totalGroupUSD", "note")
		return budget
	}

	// Alternate shape: {breakdown: {...}, total, tips}.
	var decoded struct {
		Currency  string `json:"currency"`
		Breakdown map[string]struct {
			Amount Amount `json:"amount"`
			Note   string `json:"note"`
		} `json:"breakdown"`
		Total json.RawMessage `json:"total"`
		Tips  []string        `json:"tips"`
		Note  string          `json:"note"`
	}
	_ = json.Unmarshal(raw, &decoded)
	if decoded.Currency != "" {
		budget.Currency = decoded.Currency
	}
	for key, item := range decoded.Breakdown {
		budget.PerPerson[key] = BudgetItem{Amount: item.Amount, Note: item.Note}
	}
	total := stringOrNumber(decoded.Total)
	budget.TotalPerPerson = total
	budget.TotalGroup = total
	budget.Note = strings.Join(decoded.Tips, ". ")
	if budget.Note == "" {
		budget.Note = decoded.Note
	}
	budget.Extensions = collectExtensions(obj, "currency", "breakdown", "total", "tips", "note")
	return budget
}

func stringOrNumber(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return ""
}

func normalizeDietary(raw json.RawMessage) DietaryGuide {
	guide := DietaryGuide{
		Restrictions:           []string{},
		Phrases:                []DietaryPhrase{},
		SafeFoods:              []string{},
		WatchOut:               []string{},
		Apps:                   []string{},
		RecommendedRestaurants: []RestaurantRef{},
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return guide
	}

	_, hasRestrictions := obj["restrictions"]
	_, hasPhrases := obj["japanesePhrases"]
	if hasRestrictions && hasPhrases {
		var decoded struct {
			Restrictions           []string        `json:"restrictions"`
			Phrases                []DietaryPhrase `json:"japanesePhrases"`
			SafeFoods              []string        `json:"safeFoods"`
			WatchOut               []string        `json:"watchOut"`
			Apps                   []string        `json:"apps"`
			RecommendedRestaurants []RestaurantRef `json:"recommendedRestaurants"`
		}
		_ = json.Unmarshal(raw, &decoded)
		guide.Restrictions = orEmpty(decoded.Restrictions)
		guide.Phrases = decoded.Phrases
		if guide.Phrases == nil {
			guide.Phrases = []DietaryPhrase{}
		}
		guide.SafeFoods = orEmpty(decoded.SafeFoods)
		guide.WatchOut = orEmpty(decoded.WatchOut)
		guide.Apps = orEmpty(decoded.Apps)
		if decoded.RecommendedRestaurants != nil {
			guide.RecommendedRestaurants = decoded.RecommendedRestaurants
		}
		guide.Extensions = collectExtensions(obj,
			"restrictions", "japanesePhrases", "safeFoods", "watchOut",
			"apps", "recommendedRestaurants")
		return guide
	}

	// Generic shape: restrictions may be called requirements, everything
	// else keeps its default and rides along in extensions.
	var decoded struct {
		Restrictions []string `json:"restrictions"`
		Requirements []string `json:"requirements"`
	}
	_ = json.Unmarshal(raw, &decoded)
	if decoded.Restrictions != nil {
		guide.Restrictions = decoded.Restrictions
	} else if decoded.Requirements != nil {
		guide.Restrictions = decoded.Requirements
	}
	guide.Extensions = collectExtensions(obj, "restrictions", "requirements")
	return guide
}

func normalizeTransport(raw json.RawMessage) TransportInfo {
	info := TransportInfo{}
	obj, ok := decodeObject(raw)
	if !ok {
		return info
	}

	if _, present := obj["jrPassAnalysis"]; present {
		var decoded TransportInfo
		_ = json.Unmarshal(raw, &decoded)
		decoded.Extensions = collectExtensions(obj, "jrPassAnalysis", "suicaCard", "takkyubin")
		return decoded
	}

	// Generic transport: keep empty canonical fields, preserve the raw
	// data for consumers that know what to do with it.
	info.Extensions = collectExtensions(obj)
	return info
}

var dayKeyRe = regexp.MustCompile(`^day(\d+)$`)

// padDayKey rewrites "day3" to "03" so tag keys line up with day-number
// derived keys elsewhere; non-matching keys pass through unchanged.
func padDayKey(key string) string {
	m := dayKeyRe.FindStringSubmatch(key)
	if m == nil {
		return key
	}
	digits := m[1]
	for len(digits) < 2 {
		digits = "0" + digits
	}
	return digits
}

func normalizeLuggageTags(raw json.RawMessage) *LuggageTags {
	obj, ok := decodeObject(raw)
	if !ok {
		return nil
	}

	var decoded struct {
		Hero      json.RawMessage            `json:"hero"`
		Closing   json.RawMessage            `json:"closing"`
		Days      map[string]json.RawMessage `json:"days"`
		HotelKeys map[string]string          `json:"hotelKeys"`
	}
	_ = json.Unmarshal(raw, &decoded)

	tags := &LuggageTags{
		Hero:       passthrough(decoded.Hero),
		Closing:    passthrough(decoded.Closing),
		Extensions: collectExtensions(obj, "hero", "closing", "days", "hotelKeys"),
	}
	if decoded.Days != nil {
		tags.Days = make(map[string]json.RawMessage, len(decoded.Days))
		for key, val := range decoded.Days {
			tags.Days[padDayKey(key)] = val
		}
	}
	if decoded.HotelKeys != nil {
		tags.HotelKeys = make(map[string]string, len(decoded.HotelKeys))
		for key, val := range decoded.HotelKeys {
			tags.HotelKeys[padDayKey(key)] = val
		}
	}
	return tags
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
