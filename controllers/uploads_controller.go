package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const uploadTimeout = 60 * time.Second

// ImageStore keeps pet photos outside the database.
type ImageStore interface {
	Upload(ctx context.Context, file multipart.File) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// ---------------- UPLOAD ----------------
func UploadImage(images ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		url, err := images.Upload(ctx, file)
		if err != nil {
			logError(c, "upload image "+fileHeader.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "file": fileHeader.Filename})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

// ---------------- DELETE ----------------
func DeleteImage(images ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageURL := c.Query("url")
		if imageURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		if err := images.Delete(ctx, imageURL); err != nil {
			logError(c, "delete image", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
	}
}
