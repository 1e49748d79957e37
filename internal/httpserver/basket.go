package httpserver

import (
	"errors"
	"log"
	"net/http"

	"blandselv-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

func getBasketHandler(svc BasketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.GetOrCreate(c.Request.Context(), c.Query("consentId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "load basket failed"})
			return
		}
		items := sess.BasketItems
		if items == nil {
			items = []domain.BasketItem{}
		}
		c.JSON(http.StatusOK, gin.H{
			"consentId":       sess.ConsentID,
			"basketItems":     items,
			"customerDetails": sess.CustomerDetails,
			"allowCookies":    sess.AllowCookies,
		})
	}
}

type updateBasketRequest struct {
	ConsentID   string              `json:"consentId" validate:"required"`
	BasketItems []domain.BasketItem `json:"basketItems" validate:"required,dive"`
}

func updateBasketHandler(svc BasketService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateBasketRequest
		if !bindAndValidate(c, &req) {
			return
		}
		sess, err := svc.UpdateBasket(c.Request.Context(), req.ConsentID, req.BasketItems)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "session not found"})
			case errors.Is(err, domain.ErrUnknownDrink), errors.Is(err, domain.ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			default:
				logger.Printf("update basket for %s: %v", req.ConsentID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "update basket failed"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"basketItems":     sess.BasketItems,
			"customerDetails": sess.CustomerDetails,
			"allowCookies":    sess.AllowCookies,
		})
	}
}

type updateConsentRequest struct {
	ConsentID    string `json:"consentId" validate:"required"`
	AllowCookies bool   `json:"allowCookies"`
}

func updateConsentHandler(svc BasketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateConsentRequest
		if !bindAndValidate(c, &req) {
			return
		}
		if err := svc.SetAllowCookies(c.Request.Context(), req.ConsentID, req.AllowCookies); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "session not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "update consent failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"allowCookies": req.AllowCookies})
	}
}

func revokeConsentHandler(svc BasketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		consentID := c.Query("consentId")
		if consentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "consentId required"})
			return
		}
		if err := svc.RevokeConsent(c.Request.Context(), consentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "session not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "revoke consent failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
