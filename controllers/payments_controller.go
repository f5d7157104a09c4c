package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "github.com/phillip/pet-adoption-go/services"
)

func CreatePaymentIntent(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount *float64 `json:"amount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Amount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
			return
		}

		secret, err := svc.CreateIntent(c.Request.Context(), *input.Amount)
		if err != nil {
			logError(c, "create payment intent", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to create payment intent")})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
	}
}
