package product

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfware/inventory/internal/logger"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the product API on the router root.
func RegisterRoutes(router *gin.Engine, service *Service) {
	handler := &httpHandler{service: service}
	router.POST("/products", handler.createProduct)
	router.GET("/products", handler.listProducts)
	router.PUT("/products/:id", handler.updateProduct)
	router.DELETE("/products/:id", handler.deleteProduct)
}

type httpHandler struct {
	service *Service
}

// upsertResponse always carries imageUrl, explicitly null without an image.
type upsertResponse struct {
	Product
	ImageURL *string `json:"imageUrl"`
}

func (h *httpHandler) createProduct(c *gin.Context) {
	in := CreateInput{
		Name:     c.PostForm("name"),
		Quantity: c.PostForm("quantity"),
		Price:    c.PostForm("price"),
		File:     formImage(c),
	}

	p, url, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, upsertResponse{Product: p, ImageURL: url})
}

func (h *httpHandler) listProducts(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *httpHandler) updateProduct(c *gin.Context) {
	in := UpdateInput{
		Name:     optionalForm(c, "name"),
		Quantity: optionalForm(c, "quantity"),
		Price:    optionalForm(c, "price"),
		File:     formImage(c),
	}

	p, url, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, upsertResponse{Product: p, ImageURL: url})
}

func (h *httpHandler) deleteProduct(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		logger.L().Error("product request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("correlation_id", logger.CorrelationID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func formImage(c *gin.Context) *multipart.FileHeader {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fileHeader
}

func optionalForm(c *gin.Context, field string) *string {
	val, ok := c.GetPostForm(field)
	if !ok {
		return nil
	}
	return &val
}
