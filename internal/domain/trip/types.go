package trip

import (
	"encoding/json"
	"strconv"
)

// RawDocument is a parsed but not yet normalized trip JSON document.
type RawDocument map[string]json.RawMessage

// TripData is the canonical model every view consumes. It is built once
// per request and never mutated afterwards.
type TripData struct {
	Trip        Trip         `json:"trip"`
	Stays       []Stay       `json:"stays"`
	Days        []Day        `json:"days"`
	Dietary     DietaryGuide `json:"dietary"`
	Transport   TransportInfo `json:"transport"`
	Bookings    []Booking    `json:"bookings"`
	Budget      Budget       `json:"budget"`
	Packing     []string     `json:"packing"`
	Stats       []Stat       `json:"stats"`
	Hotels      Hotels       `json:"hotels"`
	Travels     []TravelLeg  `json:"travels"`
	Restaurants Restaurants  `json:"restaurants"`
	Pins        PinsData     `json:"pins"`
	Extended    *ExtendedTrip `json:"extended,omitempty"`

	// Enrichment sections have no normalizer. They are carried verbatim
	// when present; absence means the feature is disabled.
	Routes       json.RawMessage `json:"routes,omitempty"`
	MapConfig    json.RawMessage `json:"mapConfig,omitempty"`
	RegionStyles json.RawMessage `json:"regionStyles,omitempty"`
	RouteStops   json.RawMessage `json:"routeStops,omitempty"`
	Capabilities json.RawMessage `json:"capabilities,omitempty"`
	Theme        json.RawMessage `json:"theme,omitempty"`
	Stickers     json.RawMessage `json:"stickers,omitempty"`
	LuggageTags  *LuggageTags    `json:"luggageTags,omitempty"`
	Weather      json.RawMessage `json:"weather,omitempty"`
	Currency     json.RawMessage `json:"currency,omitempty"`
	Polaroids    json.RawMessage `json:"polaroids,omitempty"`
}

// Extensions preserves raw fields a normalizer did not recognize, keyed by
// their original name. Canonical fields stay strict; nothing upstream is
// silently dropped.
type Extensions map[string]json.RawMessage

// Trip holds the high-level trip metadata.
type Trip struct {
	Title          string     `json:"title"`
	TitleLocal     string     `json:"titleJp"`
	Dates          string     `json:"dates"`
	Travelers      int        `json:"travelers"`
	DurationDays   int        `json:"durationDays"`
	DurationNights int        `json:"durationNights"`
	Origin         string     `json:"origin"`
	Flights        Flights    `json:"flights"`
	Dietary        []string   `json:"dietary"`
	Route          []string   `json:"route"`
	Extensions     Extensions `json:"extensions,omitempty"`
}

// Flights pairs the outbound and return legs of the trip itself.
type Flights struct {
	Outbound FlightLeg `json:"outbound"`
	Return   FlightLeg `json:"return"`
}

// FlightLeg is one direction of the framing flights.
type FlightLeg struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Date    string `json:"date"`
	Arrives string `json:"arrives,omitempty"`
	Departs string `json:"departs,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Day is one itinerary day. Day numbers are unique and strictly
// increasing across the trip; they are the ordering key for every
// day-indexed lookup.
type Day struct {
	Day          int             `json:"day"`
	Date         string          `json:"date"`
	DateLabel    string          `json:"dateLabel"`
	Title        string          `json:"title"`
	Region       string          `json:"region"`
	Tagline      string          `json:"tagline"`
	Stay         string          `json:"stay,omitempty"`
	Highlights   []string        `json:"highlights"`
	Activities   []Activity      `json:"activities"`
	Transport    DayTransport    `json:"transport"`
	Food         string          `json:"food"`
	Tip          string          `json:"tip"`
	KeyCost      *float64        `json:"keyCost,omitempty"`
	IsCyclingDay bool            `json:"isCyclingDay,omitempty"`
	Optional     json.RawMessage `json:"optional,omitempty"`
	Extensions   Extensions      `json:"extensions,omitempty"`
}

// Activity is a single scheduled item within a day.
type Activity struct {
	Time      string   `json:"time"`
	Name      string   `json:"name"`
	Location  string   `json:"location,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Cost      *float64 `json:"cost,omitempty"`
	BookAhead bool     `json:"bookAhead,omitempty"`
	Note      string   `json:"note,omitempty"`
	Type      string   `json:"type"`
}

// DayTransport summarizes how the group moves on a given day.
type DayTransport struct {
	Mode     string   `json:"mode"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Via      string   `json:"via,omitempty"`
	Duration string   `json:"duration"`
	Cost     *float64 `json:"cost,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Stay is a high-level accommodation block.
type Stay struct {
	Location string `json:"location"`
	Nights   int    `json:"nights"`
	Dates    string `json:"dates"`
	Area     string `json:"area,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Stat is a closing-slide statistic.
type Stat struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Suffix string  `json:"suffix,omitempty"`
}

// DietaryPhrase is a phrase travelers can show at restaurants.
type DietaryPhrase struct {
	Phrase  string `json:"japanese"`
	Meaning string `json:"meaning"`
}

// RestaurantRef is a lightweight pointer used by the dietary guide.
type RestaurantRef struct {
	Name string `json:"name"`
	City string `json:"city"`
	Type string `json:"type"`
}

// DietaryGuide collects everything the practical tab shows about food
// restrictions.
type DietaryGuide struct {
	Restrictions           []string        `json:"restrictions"`
	Phrases                []DietaryPhrase `json:"japanesePhrases"`
	SafeFoods              []string        `json:"safeFoods"`
	WatchOut               []string        `json:"watchOut"`
	Apps                   []string        `json:"apps"`
	RecommendedRestaurants []RestaurantRef `json:"recommendedRestaurants"`
	Extensions             Extensions      `json:"extensions,omitempty"`
}

// RailPassAnalysis compares pass options against estimated individual fares.
type RailPassAnalysis struct {
	SevenDay                 float64 `json:"sevenDay"`
	FourteenDay              float64 `json:"fourteenDay"`
	EstimatedIndividualTotal string  `json:"estimatedIndividualTotal"`
	Recommendation           string  `json:"recommendation"`
	Note                     string  `json:"note"`
}

// LuggageForwarding describes the door-to-door luggage service.
type LuggageForwarding struct {
	What      string `json:"what"`
	Cost      string `json:"cost"`
	How       string `json:"how"`
	Delivery  string `json:"delivery"`
	UsedOnDay int    `json:"usedOnDay"`
}

// TransportInfo is the practical-tab transport section.
type TransportInfo struct {
	RailPass          RailPassAnalysis  `json:"jrPassAnalysis"`
	TransitCard       string            `json:"suicaCard"`
	LuggageForwarding LuggageForwarding `json:"takkyubin"`
	Extensions        Extensions        `json:"extensions,omitempty"`
}

// BookingPriority is the canonical urgency level of a booking item.
type BookingPriority string

const (
	PriorityCritical BookingPriority = "critical"
	PriorityHigh     BookingPriority = "high"
	PriorityMedium   BookingPriority = "medium"
	PriorityLow      BookingPriority = "low"
)

// Booking is one reserve-ahead item.
type Booking struct {
	Item     string          `json:"item"`
	When     string          `json:"when"`
	Priority BookingPriority `json:"priority"`
	URL      string          `json:"url,omitempty"`
	Note     string          `json:"note,omitempty"`
}

// Amount is either a plain number or a pre-formatted display string.
type Amount struct {
	Number float64
	Text   string
	IsText bool
}

// UnmarshalJSON accepts both numeric and string amounts.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Amount{Text: text, IsText: true}
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*a = Amount{Number: number}
	return nil
}

// MarshalJSON writes the amount back in its original form.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsText {
		return json.Marshal(a.Text)
	}
	return []byte(strconv.FormatFloat(a.Number, 'f', -1, 64)), nil
}

// BudgetItem is one per-person budget category.
type BudgetItem struct {
	Amount Amount `json:"amount"`
	Note   string `json:"note"`
}

// Budget is the per-person budget breakdown plus aggregate totals.
type Budget struct {
	Currency          string                `json:"currency"`
	PerPerson         map[string]BudgetItem `json:"perPerson"`
	TotalPerPerson    string                `json:"totalPerPerson"`
	TotalPerPersonUSD string                `json:"totalPerPersonUSD"`
	TotalGroup        string                `json:"totalGroup"`
	TotalGroupUSD     string                `json:"totalGroupUSD"`
	Note              string                `json:"note"`
	Extensions        Extensions            `json:"extensions,omitempty"`
}

// HotelOption is one candidate accommodation within a city.
type HotelOption struct {
	Name          string          `json:"name"`
	NameLocal     string          `json:"nameJp"`
	Type          string          `json:"type,omitempty"`
	PriceEUR      string          `json:"priceEUR"`
	PriceJPY      string          `json:"priceJPY"`
	Style         string          `json:"style,omitempty"`
	Location      string          `json:"location,omitempty"`
	Neighborhood  string          `json:"neighborhood,omitempty"`
	Highlights    []string        `json:"highlights,omitempty"`
	URL           string          `json:"url,omitempty"`
	TravellerPick bool            `json:"travellerPick"`
	PickReason    string          `json:"pickReason,omitempty"`
	BookingURL    string          `json:"bookingUrl,omitempty"`
	OfficialURL   string          `json:"officialUrl,omitempty"`
	TotalPerRoom  string          `json:"totalPerRoom,omitempty"`
	RyokanDetails json.RawMessage `json:"ryokanDetails,omitempty"`
	DietaryNote   string          `json:"dietaryNote,omitempty"`
	Extensions    Extensions      `json:"extensions,omitempty"`
}

// HotelCity groups the hotel options for one stay.
type HotelCity struct {
	StayID       string          `json:"stayId"`
	Location     string          `json:"location"`
	Nights       int             `json:"nights"`
	Dates        string          `json:"dates"`
	Purpose      string          `json:"purpose,omitempty"`
	Options      []HotelOption   `json:"options"`
	CheckIn      string          `json:"checkIn,omitempty"`
	CheckOut     string          `json:"checkOut,omitempty"`
	SearchParams json.RawMessage `json:"searchParams,omitempty"`
	PricingNote  string          `json:"pricingNote,omitempty"`
	Extensions   Extensions      `json:"extensions,omitempty"`
}

// UserPreferences records what the travelers said they liked.
type UserPreferences struct {
	LovedHotel   string `json:"lovedHotel"`
	Style        string `json:"style"`
	InterestedIn string `json:"interestedIn"`
}

// Hotels is the accommodation section: shared notes plus one HotelCity
// per stay, in document order.
type Hotels struct {
	Budget          string               `json:"budget"`
	Note            string               `json:"note"`
	UserPreferences UserPreferences      `json:"userPreferences"`
	Cities          map[string]HotelCity `json:"cities"`
	Extensions      Extensions           `json:"extensions,omitempty"`

	cityOrder []string
}

// CityOrder returns the hotel city keys in document order.
func (h Hotels) CityOrder() []string {
	return h.cityOrder
}

// RestaurantSpot is one dining recommendation.
type RestaurantSpot struct {
	Name         string `json:"name"`
	NameLocal    string `json:"nameJp"`
	Cuisine      string `json:"cuisine"`
	Neighborhood string `json:"neighborhood"`
	Price        string `json:"price"`
	GlutenFree   bool   `json:"gf"`
	Vegan        bool   `json:"vegan"`
	Vegetarian   bool   `json:"vegetarian"`
	MustTry      string `json:"mustTry"`
	Note         string `json:"note"`
	URL          string `json:"url"`
}

// RestaurantLocation groups the spots serving a set of days.
type RestaurantLocation struct {
	Label            string           `json:"label"`
	ForDays          []int            `json:"forDays"`
	Spots            []RestaurantSpot `json:"spots"`
	SurvivalTips     string           `json:"survivalTips,omitempty"`
	CyclingFuelGuide json.RawMessage  `json:"cyclingFuelGuide,omitempty"`
}

// Restaurants is the dining section keyed by opaque location ids.
type Restaurants struct {
	Note            string                        `json:"note"`
	AllergyCardLocal string                       `json:"allergyCardJp"`
	AllergyCardEN   string                        `json:"allergyCardEn"`
	SafeFoods       []string                      `json:"safeFoods"`
	DangerFoods     []string                      `json:"dangerFoods"`
	Apps            []string                      `json:"apps"`
	ByLocation      map[string]RestaurantLocation `json:"byLocation"`
	Extensions      Extensions                    `json:"extensions,omitempty"`

	locationOrder []string
}

// LocationOrder returns the byLocation keys in document order.
func (r Restaurants) LocationOrder() []string {
	return r.locationOrder
}

// TravelMode is the fixed enumeration of inter-city transport modes.
type TravelMode string

const (
	ModePlane      TravelMode = "plane"
	ModeTrain      TravelMode = "train"
	ModeShinkansen TravelMode = "shinkansen"
	ModeBus        TravelMode = "bus"
	ModeBike       TravelMode = "bike"
)

// TravelPoint is one end of a travel leg.
type TravelPoint struct {
	Name    string `json:"name"`
	Area    string `json:"area,omitempty"`
	Country string `json:"country,omitempty"`
	Code    string `json:"code,omitempty"`
}

// TravelLeg is one inter-city movement. Multiple legs may share a day.
type TravelLeg struct {
	ID         string      `json:"id"`
	Day        int         `json:"day"`
	From       TravelPoint `json:"from"`
	To         TravelPoint `json:"to"`
	Mode       TravelMode  `json:"mode"`
	Icon       string      `json:"icon"`
	Carrier    string      `json:"carrier,omitempty"`
	Line       string      `json:"line,omitempty"`
	Route      string      `json:"route,omitempty"`
	Duration   string      `json:"duration"`
	Distance   string      `json:"distance"`
	Cost       *float64    `json:"cost"`
	CostNote   string      `json:"costNote,omitempty"`
	RoundTrip  bool        `json:"roundTrip,omitempty"`
	Via        []string    `json:"via,omitempty"`
	Details    string      `json:"details"`
	Animation  string      `json:"animation"`
	Extensions Extensions  `json:"extensions,omitempty"`
}

// PinStatus relates a point of interest to the planned route.
type PinStatus string

const (
	PinMatched   PinStatus = "matched"
	PinNearRoute PinStatus = "nearRoute"
	PinOffRoute  PinStatus = "offRoute"
)

// Pin is a map point of interest.
type Pin struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	NameLocal         string    `json:"nameJp,omitempty"`
	Note              string    `json:"note,omitempty"`
	Lat               float64   `json:"lat"`
	Lng               float64   `json:"lng"`
	GoogleMapsURL     string    `json:"googleMapsUrl,omitempty"`
	Region            string    `json:"region"`
	Category          string    `json:"category"`
	Status            PinStatus `json:"status"`
	Day               *int      `json:"day"`
	DayLabel          string    `json:"dayLabel,omitempty"`
	PossibleDays      []int     `json:"possibleDays,omitempty"`
	PossibleDayLabels []string  `json:"possibleDayLabels,omitempty"`
	Source            string    `json:"source,omitempty"`
	HotelLocation     string    `json:"hotelLocation,omitempty"`
	Chosen            bool      `json:"chosen,omitempty"`
	ExtendedStatus    PinStatus `json:"extendedStatus,omitempty"`
	ExtendedDay       *int      `json:"extendedDay,omitempty"`
	ExtendedDayLabel  string    `json:"extendedDayLabel,omitempty"`
}

// PinStats summarizes the pin export.
type PinStats struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	NearRoute int `json:"nearRoute"`
	OffRoute  int `json:"offRoute"`
}

// PinsData is the map section of the document.
type PinsData struct {
	Source             string            `json:"source,omitempty"`
	ExportDate         string            `json:"exportDate,omitempty"`
	Stats              PinStats          `json:"stats"`
	Categories         []string          `json:"categories"`
	Regions            []string          `json:"regions"`
	StatusDescriptions map[string]string `json:"statusDescriptions,omitempty"`
	Items              []Pin             `json:"items"`
}

// LuggageTags positions decorative tags; day keys are normalized to
// two-digit form so they line up with day-number derived keys.
type LuggageTags struct {
	Hero       json.RawMessage            `json:"hero,omitempty"`
	Closing    json.RawMessage            `json:"closing,omitempty"`
	Days       map[string]json.RawMessage `json:"days,omitempty"`
	HotelKeys  map[string]string          `json:"hotelKeys,omitempty"`
	Extensions Extensions                 `json:"extensions,omitempty"`
}

// ExtendedTrip is the optional second phase after the split day. Its
// days, travels and restaurants share the primary canonical shapes.
type ExtendedTrip struct {
	Note            string          `json:"note"`
	Travelers       int             `json:"travelers"`
	Rooms           int             `json:"rooms,omitempty"`
	SplitDay        int             `json:"splitDay"`
	SplitDate       string          `json:"splitDate"`
	SplitNote       string          `json:"splitNote"`
	Dates           string          `json:"dates"`
	ExtendedDays    int             `json:"extendedDays"`
	ExtendedNights  int             `json:"extendedNights"`
	DietaryReminder string          `json:"dietaryReminder,omitempty"`
	ReturnFlight    FlightLeg       `json:"returnFlight"`
	Stays           []Stay          `json:"stays"`
	Days            []Day           `json:"days"`
	Travels         []TravelLeg     `json:"travels"`
	Restaurants     Restaurants     `json:"restaurants"`
	PracticalTips   json.RawMessage `json:"practicalTips,omitempty"`
	Extensions      Extensions      `json:"extensions,omitempty"`
}
