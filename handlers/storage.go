package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"residora/services/provider"
	"residora/services/storage"
)

// StorageHandler handles provider image uploads.
type StorageHandler struct {
	StorageSvc  storage.StorageService
	ProviderSvc provider.ProviderService
}

func NewStorageHandler(storageSvc storage.StorageService, providerSvc provider.ProviderService) *StorageHandler {
	return &StorageHandler{StorageSvc: storageSvc, ProviderSvc: providerSvc}
}

// UploadProfileImage stores a profile image for the authenticated provider
// and records its delivery URL on the profile.
// POST /api/provider/image
func (h *StorageHandler) UploadProfileImage(c *gin.Context) {
	if h.StorageSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadImage(c.Request.Context(), tempFilePath, "providers")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed", "details": err.Error()})
		return
	}

	url, err := h.StorageSvc.ImageURL(publicID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve image url", "details": err.Error()})
		return
	}

	if err := h.ProviderSvc.SetProfileImage(c.Request.Context(), c.GetString("providerID"), url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
