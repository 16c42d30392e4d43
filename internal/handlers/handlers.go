package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"framestudio/internal/database"
	"framestudio/internal/models"
	"framestudio/internal/services"
)

// CatalogStore is the read-only catalog the handlers serve from.
type CatalogStore interface {
	GetFrames() []models.Frame
	GetFramesByMaterial(material string) []models.Frame
	GetPopularFrames() []models.Frame
	GetMaterials() []string
	GetFrameByID(id string) (*models.Frame, error)
	GetSizes() []models.Size
	GetSizeByID(id string) (*models.Size, error)
	GetMatOptions() []models.MatOption
	GetMatOptionByID(id string) (*models.MatOption, error)
	GetDeliveryZones() []models.DeliveryZone
	GetDeliveryZone(name string) (*models.DeliveryZone, bool)
	GetTestimonials() []models.Testimonial
	GetGalleryImages() []models.GalleryImage
	GetWallLayouts() []models.WallLayout
	GetFAQs() []models.FAQ
}

// CookieSettings controls the visitor session cookie.
type CookieSettings struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

// Handler serves the storefront API.
type Handler struct {
	catalog  CatalogStore
	sessions *services.SessionStore
	photos   *services.PhotoService
	logger   *zap.Logger
	cookie   CookieSettings
}

const sessionKey = "session"

func NewHandler(catalog CatalogStore, sessions *services.SessionStore, photos *services.PhotoService, logger *zap.Logger, cookie CookieSettings) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cookie.Name == "" {
		cookie.Name = "user_session"
	}
	if cookie.MaxAge == 0 {
		cookie.MaxAge = 3600 * 24 * 30
	}
	return &Handler{
		catalog:  catalog,
		sessions: sessions,
		photos:   photos,
		logger:   logger,
		cookie:   cookie,
	}
}

// SessionMiddleware attaches the visitor's session, issuing a new cookie
// when the request has none or an invalid one.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Cookie(h.cookie.Name)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = generateSessionID()
			h.logger.Debug("new visitor session", zap.String("session_id", sessionID))
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, sessionID, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)

		c.Set(sessionKey, h.sessions.GetOrCreate(sessionID))
		c.Next()
	}
}

func session(c *gin.Context) *services.Session {
	return c.MustGet(sessionKey).(*services.Session)
}

func generateSessionID() string {
	return uuid.NewString()
}

// RegisterRoutes mounts every storefront route on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/frames", h.ListFrames)
		api.GET("/frames/:id", h.GetFrame)
		api.GET("/materials", h.ListMaterials)
		api.GET("/sizes", h.ListSizes)
		api.GET("/mats", h.ListMats)
		api.GET("/delivery-zones", h.ListDeliveryZones)
		api.GET("/payment-methods", h.ListPaymentMethods)
		api.GET("/testimonials", h.ListTestimonials)
		api.GET("/gallery", h.ListGallery)
		api.GET("/wall-layouts", h.ListWallLayouts)
		api.GET("/faqs", h.ListFAQs)
	}

	visitor := api.Group("")
	visitor.Use(h.SessionMiddleware())
	{
		visitor.GET("/cart", h.GetCart)
		visitor.DELETE("/cart", h.ClearCart)
		visitor.DELETE("/cart/items/:cartId", h.RemoveCartItem)
		visitor.PATCH("/cart/items/:cartId", h.UpdateCartItem)
		visitor.POST("/cart/toggle", h.ToggleCart)
		visitor.PUT("/cart/open", h.SetCartOpen)

		visitor.GET("/builder", h.GetBuilder)
		visitor.GET("/builder/photo", h.GetPhoto)
		visitor.POST("/builder/photo", h.UploadPhoto)
		visitor.DELETE("/builder/photo", h.ClearPhoto)
		visitor.PUT("/builder/frame", h.SelectFrame)
		visitor.PUT("/builder/size", h.SelectSize)
		visitor.PUT("/builder/mat", h.SelectMat)
		visitor.DELETE("/builder/mat", h.ClearMat)
		visitor.POST("/builder/next", h.NextStage)
		visitor.POST("/builder/back", h.PreviousStage)
		visitor.POST("/builder/stage/:stage", h.GoToStage)
		visitor.POST("/builder/submit", h.SubmitBuilder)
		visitor.POST("/builder/reset", h.ResetBuilder)

		visitor.GET("/checkout", h.GetCheckout)
		visitor.POST("/checkout", h.PlaceOrder)
		visitor.POST("/checkout/start-over", h.StartOver)
	}

	r.GET("/checkout/receipt", h.SessionMiddleware(), h.ReceiptPage)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}

// respondError maps domain errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Please fix the highlighted fields", "fields": verr.Fields})
		return
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, services.ErrUnknownStage):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, services.ErrPhotoTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, services.ErrUnsupportedPhoto):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, services.ErrStageLocked),
		errors.Is(err, services.ErrIncomplete),
		errors.Is(err, services.ErrSubmitNotReady),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrOrderPlaced):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
