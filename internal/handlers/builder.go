package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"framestudio/internal/models"
	"framestudio/internal/services"
)

// withBuilder runs fn on the session builder and replies with its view.
func (h *Handler) withBuilder(c *gin.Context, fn func(b *services.Builder) error) {
	var view services.BuilderView
	err := session(c).Do(func(s *services.Session) error {
		if err := fn(s.Builder); err != nil {
			return err
		}
		view = s.Builder.View()
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "builder": view})
}

// GetBuilder returns the builder state. A ?frame= hint pre-selects a frame;
// unknown ids are ignored.
func (h *Handler) GetBuilder(c *gin.Context) {
	hint := c.Query("frame")
	h.withBuilder(c, func(b *services.Builder) error {
		if hint != "" && !b.ApplyFrameHint(hint, h.catalog) {
			h.logger.Debug("unknown frame hint ignored", zap.String("frame", hint))
		}
		return nil
	})
}

// UploadPhoto accepts a multipart "photo" file.
func (h *Handler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.photos.MaxBytes()+(1<<20))

	fh, err := c.FormFile("photo")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(c, services.ErrPhotoTooLarge)
			return
		}
		badRequest(c, "A photo file is required")
		return
	}
	if fh.Size > h.photos.MaxBytes() {
		h.respondError(c, services.ErrPhotoTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer f.Close()

	photo, err := h.photos.ReadPhoto(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var view services.BuilderView
	_ = session(c).Do(func(s *services.Session) error {
		s.Builder.SelectPhoto(photo)
		view = s.Builder.View()
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "builder": view, "preview": photo.Preview})
}

// GetPhoto returns the current photo including its preview.
func (h *Handler) GetPhoto(c *gin.Context) {
	var photo *models.Photo
	_ = session(c).Do(func(s *services.Session) error {
		photo = s.Builder.Photo()
		return nil
	})
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No photo uploaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "photo": photo})
}

func (h *Handler) ClearPhoto(c *gin.Context) {
	h.withBuilder(c, func(b *services.Builder) error {
		b.ClearPhoto()
		return nil
	})
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) bindSelection(c *gin.Context) (string, bool) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, `Body must be {"id": "..."}`)
		return "", false
	}
	return req.ID, true
}

func (h *Handler) SelectFrame(c *gin.Context) {
	id, ok := h.bindSelection(c)
	if !ok {
		return
	}
	frame, err := h.catalog.GetFrameByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.withBuilder(c, func(b *services.Builder) error {
		b.SelectFrame(*frame)
		return nil
	})
}

func (h *Handler) SelectSize(c *gin.Context) {
	id, ok := h.bindSelection(c)
	if !ok {
		return
	}
	size, err := h.catalog.GetSizeByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.withBuilder(c, func(b *services.Builder) error {
		b.SelectSize(*size)
		return nil
	})
}

// SelectMat sets the mat; the "none" id clears it.
func (h *Handler) SelectMat(c *gin.Context) {
	id, ok := h.bindSelection(c)
	if !ok {
		return
	}
	if id == models.NoMatID {
		h.ClearMat(c)
		return
	}
	mat, err := h.catalog.GetMatOptionByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.withBuilder(c, func(b *services.Builder) error {
		b.SelectMat(*mat)
		return nil
	})
}

func (h *Handler) ClearMat(c *gin.Context) {
	h.withBuilder(c, func(b *services.Builder) error {
		b.ClearMat()
		return nil
	})
}

func (h *Handler) NextStage(c *gin.Context) {
	h.withBuilder(c, func(b *services.Builder) error { return b.Next() })
}

func (h *Handler) PreviousStage(c *gin.Context) {
	h.withBuilder(c, func(b *services.Builder) error {
		b.Back()
		return nil
	})
}

func (h *Handler) GoToStage(c *gin.Context) {
	stage, err := services.ParseStage(c.Param("stage"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.withBuilder(c, func(b *services.Builder) error { return b.GoTo(stage) })
}

// SubmitBuilder adds the configured frame to the cart.
func (h *Handler) SubmitBuilder(c *gin.Context) {
	var (
		item models.CartLineItem
		view services.BuilderView
	)
	s := session(c)
	err := s.Do(func(s *services.Session) error {
		var err error
		if item, err = s.Builder.Submit(s.Cart); err != nil {
			return err
		}
		view = s.Builder.View()
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("frame added to cart",
		zap.String("cart_id", item.CartID),
		zap.String("frame_id", item.FrameID),
		zap.String("size_id", item.SizeID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item, "builder": view, "cart": s.Cart.View()})
}

func (h *Handler) ResetBuilder(c *gin.Context) {
	h.withBuilder(c, func(b *services.Builder) error {
		b.Reset()
		return nil
	})
}
