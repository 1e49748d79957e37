package httpserver

import (
	"errors"
	"net/http"

	"blandselv-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type addressWashRequest struct {
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country"`
	StreetNumber string `json:"streetNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ConsentID    string `json:"consentId"`
}

// addressWashHandler validates the submitted address against DAWA. Only an
// exact (category A) match passes; everything else is reported back with
// the raw DAWA payload. Incomplete submissions never reach the upstream.
func addressWashHandler(validator AddressValidator, baskets BasketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressWashRequest
		if !bindAndValidate(c, &req) {
			return
		}

		result, err := validator.Wash(c.Request.Context(), req.Address, req.City, req.PostalCode)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "address lookup failed"})
			return
		}
		if !result.OK {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":      "address could not be validated",
				"dawaResponse": result.Raw,
			})
			return
		}

		details := domain.CustomerDetails{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			StreetName:   result.StreetName,
			StreetNumber: result.StreetNumber,
			City:         result.City,
			PostalCode:   result.PostalCode,
			Country:      req.Country,
		}
		if details.Country == "" {
			details.Country = "DK"
		}

		if req.ConsentID != "" {
			if err := baskets.SaveCustomerDetails(c.Request.Context(), req.ConsentID, details); err != nil && !errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "store customer details failed"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"customerDetails": details,
			"dawaResponse":    result.Raw,
		})
	}
}
