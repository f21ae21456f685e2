package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomoika/tripmag/internal/domain/trip"
	apperrors "github.com/tomoika/tripmag/pkg/errors"
)

// TripHandler wires the HTTP transport to the trip domain service.
type TripHandler struct {
	tripSvc trip.Service
	logger  *slog.Logger
}

// NewTripHandler constructs the root HTTP handler.
func NewTripHandler(tripSvc trip.Service, logger *slog.Logger) *TripHandler {
	return &TripHandler{
		tripSvc: tripSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

// TripLoader loads and normalizes the trip once per request and stashes
// the model in the gin context for every view handler below it.
func (h *TripHandler) TripLoader(c *gin.Context) {
	slug := c.Param("slug")
	data, err := h.tripSvc.Load(c.Request.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrNotFound):
			abortWithError(c, NewHTTPError(http.StatusNotFound, "trip_not_found", "no trip for slug "+slug, err))
		case trip.IsShapeError(err):
			abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_trip_document", err.Error(), err))
		case apperrors.IsCode(err, "trip_error"):
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", errMessage(err), err))
		default:
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", errMessage(err), err))
		}
		return
	}
	setTripData(c, slug, data)
	c.Next()
}

// Trip returns the full canonical model.
func (h *TripHandler) Trip(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, data)
}

type hotelMatch struct {
	Key  string         `json:"key"`
	City trip.HotelCity `json:"city"`
}

type presentationDay struct {
	Day         trip.Day         `json:"day"`
	Travels     []trip.TravelLeg `json:"travels,omitempty"`
	Dining      *trip.DayDining  `json:"dining,omitempty"`
	Hotel       *hotelMatch      `json:"hotel,omitempty"`
	SplitBanner bool             `json:"splitBanner,omitempty"`
}

// Presentation returns everything the scroll-driven slide deck needs:
// one entry per day with its travel legs, dining link, matched hotel
// city and split-banner flag, plus the hero and closing material.
func (h *TripHandler) Presentation(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}

	legsByDay := trip.LegsByDay(data.Travels)
	diningByDay := trip.DiningByDay(data.Restaurants)

	days := make([]presentationDay, 0, len(data.Days))
	for _, day := range data.Days {
		entry := presentationDay{Day: day, Travels: legsByDay[day.Day]}
		if dining, found := diningByDay[day.Day]; found {
			d := dining
			entry.Dining = &d
		}
		if city, key, found := trip.MatchHotelCity(day.Stay, data.Hotels); found {
			entry.Hotel = &hotelMatch{Key: key, City: city}
		}
		if data.Extended != nil && day.Day == data.Extended.SplitDay {
			entry.SplitBanner = true
		}
		days = append(days, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":        data.Trip,
		"days":        days,
		"stats":       data.Stats,
		"luggageTags": data.LuggageTags,
		"stickers":    data.Stickers,
		"polaroids":   data.Polaroids,
		"theme":       data.Theme,
		"totalSlides": len(data.Days) + 2,
	})
}

type itineraryDay struct {
	trip.Day
	Blocks []trip.ActivityBlock `json:"blocks"`
}

// Itinerary returns the day cards with activities grouped into
// morning/afternoon/evening blocks.
func (h *TripHandler) Itinerary(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}

	days := make([]itineraryDay, 0, len(data.Days))
	for _, day := range data.Days {
		days = append(days, itineraryDay{Day: day, Blocks: trip.GroupActivities(day.Activities)})
	}

	c.JSON(http.StatusOK, gin.H{
		"days":         days,
		"travelsByDay": trip.LegsByDay(data.Travels),
		"regionStyles": data.RegionStyles,
	})
}

// Hotels returns the accommodation section with its document city order.
func (h *TripHandler) Hotels(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hotels":    data.Hotels,
		"cityOrder": data.Hotels.CityOrder(),
		"stays":     data.Stays,
	})
}

// Restaurants returns the dining section with its document location order.
func (h *TripHandler) Restaurants(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurants":   data.Restaurants,
		"locationOrder": data.Restaurants.LocationOrder(),
		"diningByDay":   trip.DiningByDay(data.Restaurants),
		"dietary":       data.Dietary,
	})
}

// Packing returns the flattened packing list.
func (h *TripHandler) Packing(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packing":     data.Packing,
		"luggageTags": data.LuggageTags,
	})
}

// Budget returns the budget breakdown plus the reserve-ahead list.
func (h *TripHandler) Budget(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"budget":    data.Budget,
		"bookings":  data.Bookings,
		"transport": data.Transport,
	})
}

// Map returns the pins plus the map enrichment pass-throughs.
func (h *TripHandler) Map(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pins":         data.Pins,
		"routes":       data.Routes,
		"mapConfig":    data.MapConfig,
		"regionStyles": data.RegionStyles,
		"routeStops":   data.RouteStops,
	})
}

// Extended returns the optional trip-extension phase.
func (h *TripHandler) Extended(c *gin.Context) {
	data, ok := getTripData(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trip_error", "trip not loaded", nil))
		return
	}
	if data.Extended == nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "extended_not_available", "trip "+getTripSlug(c)+" has no extended phase", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"extended":     data.Extended,
		"travelsByDay": trip.LegsByDay(data.Extended.Travels),
		"diningByDay":  trip.DiningByDay(data.Extended.Restaurants),
	})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
