package trip

import (
	"regexp"
	"strconv"
	"strings"
)

// LegsByDay indexes travel legs by day number. A day with several legs
// keeps them in document order.
func LegsByDay(legs []TravelLeg) map[int][]TravelLeg {
	byDay := map[int][]TravelLeg{}
	for _, leg := range legs {
		byDay[leg.Day] = append(byDay[leg.Day], leg)
	}
	return byDay
}

// DayDining links a day to the restaurant location covering it.
type DayDining struct {
	Count      int    `json:"count"`
	LocationID string `json:"locationId"`
}

// DiningByDay maps each day to its restaurant location. When several
// locations claim the same day the one appearing later in the document
// wins.
func DiningByDay(restaurants Restaurants) map[int]DayDining {
	byDay := map[int]DayDining{}
	for _, id := range restaurants.LocationOrder() {
		loc := restaurants.ByLocation[id]
		for _, day := range loc.ForDays {
			byDay[day] = DayDining{Count: len(loc.Spots), LocationID: id}
		}
	}
	return byDay
}

// ActivityBlock is a contiguous run of same-period activities.
type ActivityBlock struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// GroupActivities buckets a day's activities into Morning (before 12),
// Afternoon (before 17) and Evening runs. Consecutive activities in the
// same period share a block; periods may repeat if the schedule jumps
// back. Unparseable times land in Evening.
func GroupActivities(activities []Activity) []ActivityBlock {
	blocks := []ActivityBlock{}
	for _, activity := range activities {
		label := "Evening"
		if hour, err := strconv.Atoi(strings.SplitN(activity.Time, ":", 2)[0]); err == nil {
			switch {
			case hour < 12:
				label = "Morning"
			case hour < 17:
				label = "Afternoon"
			}
		}

		text := activity.Time + " — " + activity.Name
		if activity.Duration != "" {
			text += " (" + activity.Duration + ")"
		}
		if activity.Cost != nil && *activity.Cost != 0 {
			text += " — " + formatCost(*activity.Cost)
		}

		if len(blocks) == 0 || blocks[len(blocks)-1].Label != label {
			blocks = append(blocks, ActivityBlock{Label: label})
		}
		blocks[len(blocks)-1].Items = append(blocks[len(blocks)-1].Items, text)
	}
	return blocks
}

// formatCost renders a cost with thousands separators, "12500" → "12,500".
func formatCost(cost float64) string {
	text := strconv.FormatFloat(cost, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}
	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	out := sign + grouped.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

var hotelNoiseRe = regexp.MustCompile(`\b(hotel|the|a|an|near)\b`)
var hotelSplitRe = regexp.MustCompile(`[\s,()]+`)

// MatchHotelCity links a day's free-text stay to a hotel city by word
// overlap after stripping stopwords. The first city in document order
// sharing any word wins. Best effort only: distinct cities sharing a
// word can mis-match.
func MatchHotelCity(stay string, hotels Hotels) (HotelCity, string, bool) {
	if stay == "" {
		return HotelCity{}, "", false
	}
	stayWords := hotelMatchWords(stay)
	for _, key := range hotels.CityOrder() {
		city := hotels.Cities[key]
		locWords := hotelMatchWords(city.Location)
		for _, word := range stayWords {
			for _, locWord := range locWords {
				if word == locWord {
					return city, key, true
				}
			}
		}
	}
	return HotelCity{}, "", false
}

func hotelMatchWords(text string) []string {
	cleaned := hotelNoiseRe.ReplaceAllString(strings.ToLower(text), "")
	words := []string{}
	for _, word := range hotelSplitRe.Split(cleaned, -1) {
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
