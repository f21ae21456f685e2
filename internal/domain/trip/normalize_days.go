package trip

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

func normalizeDays(raw json.RawMessage) []Day {
	days := []Day{}
	if isNull(raw) {
		return days
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return days
	}
	for _, entry := range entries {
		obj, ok := decodeObject(entry)
		if !ok {
			continue
		}
		var decoded struct {
			Day          int             `json:"day"`
			Date         string          `json:"date"`
			DateLabel    string          `json:"dateLabel"`
			Title        string          `json:"title"`
			Region       string          `json:"region"`
			Tagline      string          `json:"tagline"`
			Stay         json.RawMessage `json:"stay"`
			Highlights   json.RawMessage `json:"highlights"`
			Activities   json.RawMessage `json:"activities"`
			Transport    *DayTransport   `json:"transport"`
			Food         string          `json:"food"`
			Tip          string          `json:"tip"`
			KeyCost      *float64        `json:"keyCost"`
			IsCyclingDay bool            `json:"isCyclingDay"`
			Optional     json.RawMessage `json:"optional"`
		}
		_ = json.Unmarshal(entry, &decoded)

		dateLabel := decoded.DateLabel
		if dateLabel == "" {
			dateLabel = decoded.Date
		}
		region := decoded.Region
		if region == "" {
			region = "default"
		}
		transport := DayTransport{Mode: "car"}
		if decoded.Transport != nil {
			transport = *decoded.Transport
		}
		activities := normalizeActivities(decoded.Activities)

		days = append(days, Day{
			Day:          decoded.Day,
			Date:         decoded.Date,
			DateLabel:    dateLabel,
			Title:        decoded.Title,
			Region:       region,
			Tagline:      decoded.Tagline,
			Stay:         normalizeStay(decoded.Stay),
			Highlights:   normalizeHighlights(decoded.Highlights, decoded.Activities),
			Activities:   activities,
			Transport:    transport,
			Food:         decoded.Food,
			Tip:          decoded.Tip,
			KeyCost:      decoded.KeyCost,
			IsCyclingDay: decoded.IsCyclingDay,
			Optional:     passthrough(decoded.Optional),
			Extensions: collectExtensions(obj,
				"day", "date", "dateLabel", "title", "region", "tagline",
				"stay", "highlights", "activities", "transport", "food",
				"tip", "keyCost", "isCyclingDay", "optional"),
		})
	}

	// Day numbers are the ordering key for every day-indexed lookup.
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

// normalizeStay accepts either a plain string or a {city, area} object.
func normalizeStay(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var place struct {
		City string `json:"city"`
		Area string `json:"area"`
	}
	if err := json.Unmarshal(raw, &place); err != nil || place.City == "" {
		return ""
	}
	if place.Area != "" {
		return place.City + " (" + place.Area + ")"
	}
	return place.City
}

const maxSynthesizedHighlights = 4

var stringifiedNameRe = regexp.MustCompile(`'name':\s*'([^']+)'`)

// normalizeHighlights falls back to the first activity names when the
// document carries no explicit highlights. String entries that look like
// a stringified key-value record are repaired by extracting their name.
func normalizeHighlights(raw, rawActivities json.RawMessage) []string {
	var entries []json.RawMessage
	if !isNull(raw) {
		_ = json.Unmarshal(raw, &entries)
	}
	if len(entries) == 0 {
		return synthesizeHighlights(rawActivities)
	}

	highlights := []string{}
	for _, entry := range entries {
		var text string
		if err := json.Unmarshal(entry, &text); err == nil {
			if strings.HasPrefix(text, "{") && strings.Contains(text, "'name'") {
				if m := stringifiedNameRe.FindStringSubmatch(text); m != nil {
					text = m[1]
				}
			}
			if text != "" {
				highlights = append(highlights, text)
			}
			continue
		}
		var named struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(entry, &named); err == nil {
			if named.Name == "" {
				named.Name = named.Title
			}
			if named.Name != "" {
				highlights = append(highlights, named.Name)
			}
			continue
		}
		if text := strings.TrimSpace(string(entry)); text != "" && text != "null" {
			highlights = append(highlights, text)
		}
	}
	return highlights
}

// synthesizeHighlights draws from the first four activities only, so a
// blank name shrinks the list instead of pulling in a later activity.
func synthesizeHighlights(rawActivities json.RawMessage) []string {
	highlights := []string{}
	if isNull(rawActivities) {
		return highlights
	}
	var entries []struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(rawActivities, &entries); err != nil {
		return highlights
	}
	if len(entries) > maxSynthesizedHighlights {
		entries = entries[:maxSynthesizedHighlights]
	}
	for _, entry := range entries {
		name := entry.Title
		if name == "" {
			name = entry.Name
		}
		if name != "" {
			highlights = append(highlights, name)
		}
	}
	return highlights
}

func normalizeActivities(raw json.RawMessage) []Activity {
	activities := []Activity{}
	if isNull(raw) {
		return activities
	}
	var entries []struct {
		Time      string   `json:"time"`
		Name      string   `json:"name"`
		Title     string   `json:"title"`
		Location  string   `json:"location"`
		Duration  string   `json:"duration"`
		Cost      *float64 `json:"cost"`
		BookAhead bool     `json:"bookAhead"`
		Note      string   `json:"note"`
		Details   string   `json:"details"`
		Type      string   `json:"type"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return activities
	}
	for _, entry := range entries {
		name := entry.Name
		if name == "" {
			name = entry.Title
		}
		note := entry.Note
		if note == "" {
			note = entry.Details
		}
		kind := entry.Type
		if kind == "" {
			kind = "activity"
		}
		activities = append(activities, Activity{
			Time:      entry.Time,
			Name:      name,
			Location:  entry.Location,
			Duration:  entry.Duration,
			Cost:      entry.Cost,
			BookAhead: entry.BookAhead,
			Note:      note,
			Type:      kind,
		})
	}
	return activities
}
