package httpserver

import (
	"errors"
	"log"
	"net/http"

	"blandselv-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type packagePriceRequest struct {
	Slug             string         `json:"slug" validate:"required"`
	SelectedSize     int            `json:"selectedSize" validate:"required,gt=0"`
	SelectedProducts map[string]int `json:"selectedProducts"`
}

func packagePriceHandler(svc PricingService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req packagePriceRequest
		if !bindAndValidate(c, &req) {
			return
		}
		price, err := svc.PackagePrice(c.Request.Context(), req.Slug, req.SelectedSize, req.SelectedProducts)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "package not found"})
			case errors.Is(err, domain.ErrUnknownSize):
				c.JSON(http.StatusBadRequest, gin.H{"message": "no price tier for selected size"})
			case errors.Is(err, domain.ErrUnknownDrink), errors.Is(err, domain.ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			default:
				logger.Printf("package price for %s: %v", req.Slug, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "price calculation failed"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"price": price})
	}
}
