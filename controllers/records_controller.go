package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	services "github.com/phillip/pet-adoption-go/services"
)

// RecordDonation saves a donation after the client confirmed payment.
func RecordDonation(svc *services.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var donation bson.M
		if err := c.ShouldBindJSON(&donation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation payload"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		res, err := svc.Record(ctx, donation)
		if err != nil {
			logError(c, "save donation", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

func SubmitAdoption(svc *services.AdoptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request bson.M
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adoption request"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		res, err := svc.Submit(ctx, request)
		if err != nil {
			logError(c, "submit adoption request", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit adoption request"})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}
