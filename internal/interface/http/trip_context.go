package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

const tripDataKey = "trip_data"
const tripSlugKey = "trip_slug"

func setTripData(c *gin.Context, slug string, data *trip.TripData) {
	c.Set(tripSlugKey, slug)
	c.Set(tripDataKey, data)
}

func getTripData(c *gin.Context) (*trip.TripData, bool) {
	value, ok := c.Get(tripDataKey)
	if !ok {
		return nil, false
	}
	data, ok := value.(*trip.TripData)
	return data, ok
}

func getTripSlug(c *gin.Context) string {
	return c.GetString(tripSlugKey)
}
