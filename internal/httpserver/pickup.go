package httpserver

import (
	"net/http"

	"blandselv-backend/internal/postnord"
	"github.com/gin-gonic/gin"
)

// servicePointsHandler passes the carrier response through unmodified; the
// storefront renders the raw service point list.
func servicePointsHandler(locator PickupLocator) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := postnord.Query{
			City:         c.Query("city"),
			PostalCode:   c.Query("postalCode"),
			StreetName:   c.Query("streetName"),
			StreetNumber: c.Query("streetNumber"),
		}
		if q.City == "" || q.PostalCode == "" || q.StreetName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "city, postalCode and streetName are required"})
			return
		}

		raw, err := locator.FindServicePoints(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "service point lookup failed"})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}
