package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	services "github.com/phillip/pet-adoption-go/services"
)

// ---------------- CREATE ----------------
func CreateCampaign(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var campaign bson.M
		if err := c.ShouldBindJSON(&campaign); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign payload"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		res, err := svc.Create(ctx, campaign)
		if err != nil {
			logError(c, "create campaign", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to create campaign")})
			return
		}

		c.JSON(http.StatusCreated, res)
	}
}

// ---------------- LIST ----------------
func ListCampaigns(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, okPage := queryInt(c, "page", 0)
		limit, okLimit := queryInt(c, "limit", services.DefaultLimit)
		if !okPage || !okLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page and limit must be integers"})
			return
		}

		ctx, cancel := withTimeout(c, listTimeout)
		defer cancel()

		res, err := svc.List(ctx, services.CampaignListParams{
			Email: c.Query("email"),
			Page:  page,
			Limit: limit,
		})
		if err != nil {
			logError(c, "list campaigns", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to fetch campaigns")})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// ---------------- GET ----------------
func GetCampaign(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		campaign, err := svc.GetByID(ctx, c.Param("id"))
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Donation campaign not found"})
				return
			}
			logError(c, "get campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donation details"})
			return
		}

		c.JSON(http.StatusOK, campaign)
	}
}

// ---------------- MINE ----------------
func MyCampaigns(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, listTimeout)
		defer cancel()

		campaigns, err := svc.GetMine(ctx, c.Query("email"))
		if err != nil {
			logError(c, "fetch my campaigns", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to fetch campaigns")})
			return
		}

		c.JSON(http.StatusOK, campaigns)
	}
}

// ---------------- UPDATE ----------------
func UpdateCampaign(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields bson.M
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid campaign payload"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		err := svc.Update(ctx, c.Param("id"), fields)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donation campaign updated successfully."})
		case errors.Is(err, services.ErrNotModified):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No changes were made. Possibly identical data."})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Donation campaign not found."})
		default:
			logError(c, "update campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update donation campaign."})
		}
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(svc *services.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		n, err := svc.Delete(ctx, c.Param("id"))
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
				return
			}
			logError(c, "delete campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted", "deletedCount": n})
	}
}
