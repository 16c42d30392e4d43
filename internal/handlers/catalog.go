package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"framestudio/internal/models"
)

// ListFrames returns frames, filtered by ?material= and ?popular=true.
func (h *Handler) ListFrames(c *gin.Context) {
	var frames []models.Frame
	if popular, _ := strconv.ParseBool(c.Query("popular")); popular {
		frames = h.catalog.GetPopularFrames()
	} else {
		frames = h.catalog.GetFramesByMaterial(c.Query("material"))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "frames": frames})
}

func (h *Handler) GetFrame(c *gin.Context) {
	frame, err := h.catalog.GetFrameByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "frame": frame})
}

func (h *Handler) ListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "materials": h.catalog.GetMaterials()})
}

// ListSizes includes the display price of every size.
func (h *Handler) ListSizes(c *gin.Context) {
	type sizeView struct {
		models.Size
		FormattedPrice string `json:"formattedPrice"`
	}
	sizes := h.catalog.GetSizes()
	out := make([]sizeView, len(sizes))
	for i, s := range sizes {
		out[i] = sizeView{Size: s, FormattedPrice: models.FormatPrice(s.Price)}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sizes": out})
}

func (h *Handler) ListMats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "mats": h.catalog.GetMatOptions()})
}

func (h *Handler) ListDeliveryZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "zones": h.catalog.GetDeliveryZones()})
}

func (h *Handler) ListPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "paymentMethods": models.PaymentMethods})
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "testimonials": h.catalog.GetTestimonials()})
}

func (h *Handler) ListGallery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "gallery": h.catalog.GetGalleryImages()})
}

func (h *Handler) ListWallLayouts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "layouts": h.catalog.GetWallLayouts()})
}

func (h *Handler) ListFAQs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "faqs": h.catalog.GetFAQs()})
}
