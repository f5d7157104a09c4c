package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	services "github.com/phillip/pet-adoption-go/services"
)

// ---------------- CREATE ----------------
func AddPet(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pet bson.M
		if err := c.ShouldBindJSON(&pet); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pet payload"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		id, err := svc.Add(ctx, pet)
		if err != nil {
			logError(c, "add pet", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to add pet")})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Pet added successfully",
			"insertedId": id,
		})
	}
}

// ---------------- LIST ----------------
func ListPets(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, okPage := queryInt(c, "page", 1)
		limit, okLimit := queryInt(c, "limit", services.DefaultLimit)
		if !okPage || !okLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page and limit must be integers"})
			return
		}

		ctx, cancel := withTimeout(c, listTimeout)
		defer cancel()

		res, err := svc.List(ctx, services.PetListParams{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			logError(c, "list pets", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to fetch pets")})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// ---------------- GET ----------------
func GetPet(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		pet, err := svc.GetByID(ctx, c.Param("id"))
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
				return
			}
			logError(c, "get pet", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
			return
		}

		c.JSON(http.StatusOK, pet)
	}
}

// ---------------- MINE ----------------
func MyPets(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, listTimeout)
		defer cancel()

		pets, err := svc.GetMine(ctx, c.Query("email"))
		if err != nil {
			logError(c, "fetch my pets", err)
			c.JSON(statusFor(err), gin.H{"error": message(err, "Failed to fetch pets")})
			return
		}

		c.JSON(http.StatusOK, pets)
	}
}

// ---------------- UPDATE ----------------
func UpdatePet(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields bson.M
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid pet payload"})
			return
		}

		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		if err := svc.Update(ctx, c.Param("id"), fields); err != nil {
			status := statusFor(err)
			switch status {
			case http.StatusNotFound:
				c.JSON(status, gin.H{"message": "Pet not found"})
			default:
				logError(c, "update pet", err)
				c.JSON(status, gin.H{"message": message(err, "Failed to update pet")})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Pet updated successfully"})
	}
}

// ---------------- DELETE ----------------
func DeletePet(svc *services.PetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := withTimeout(c, docTimeout)
		defer cancel()

		if err := svc.Delete(ctx, c.Param("id")); err != nil {
			if statusFor(err) == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"message": "Pet not found"})
				return
			}
			logError(c, "delete pet", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
	}
}
