package httpserver

import (
	"errors"
	"io"
	"log"
	"net/http"

	"blandselv-backend/internal/domain"
	"blandselv-backend/internal/quickpay"
	"blandselv-backend/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type createPaymentRequest struct {
	OrderID    string `json:"orderId" validate:"required"`
	TotalPrice int64  `json:"totalPrice" validate:"required,gt=0"`
	ConsentID  string `json:"consentId"`
}

func createPaymentHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPaymentRequest
		if !bindAndValidate(c, &req) {
			return
		}

		url, err := svc.StartPayment(c.Request.Context(), req.OrderID, req.TotalPrice, req.ConsentID)
		if err != nil {
			if errors.Is(err, checkout.ErrAlreadyPaid) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "order already paid"})
				return
			}
			var apiErr *quickpay.APIError
			if errors.As(err, &apiErr) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":  "payment gateway rejected the request",
					"upstream": apiErr.Body,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "create payment failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

func paymentStatusHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Query("orderId")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "orderId required"})
			return
		}
		order, err := svc.Status(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "status check failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accepted": order.Accepted(), "order": order})
	}
}

// paymentCallbackHandler receives the gateway's asynchronous payment
// notification. The body must be read raw: the checksum covers the exact
// bytes on the wire.
func paymentCallbackHandler(svc CheckoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "read body failed"})
			return
		}
		checksum := c.GetHeader(quickpay.ChecksumHeader)

		if err := svc.HandleCallback(c.Request.Context(), body, checksum); err != nil {
			if errors.Is(err, domain.ErrInvalidChecksum) {
				logger.Printf("callback rejected: bad checksum from %s", c.ClientIP())
				c.JSON(http.StatusForbidden, gin.H{"message": "invalid checksum"})
				return
			}
			logger.Printf("callback failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "callback processing failed"})
			return
		}
		c.Status(http.StatusOK)
	}
}
