package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"residora/models"
	"residora/services/product"
)

// ProductHandler exposes product listings and product checkout.
type ProductHandler struct {
	Svc product.ProductService
}

func NewProductHandler(svc product.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

// Create lists a new product under the authenticated provider.
// POST /api/provider/products
func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateProduct(c.Request.Context(), c.GetString("providerID"), p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListByProvider returns a provider's products.
// GET /api/providers/:id/products
func (h *ProductHandler) ListByProvider(c *gin.Context) {
	products, err := h.Svc.ListByProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns one product.
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update replaces a product owned by the authenticated provider.
// PUT /api/provider/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p.ID = c.Param("id")

	if err := h.Svc.UpdateProduct(c.Request.Context(), c.GetString("providerID"), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete removes a product owned by the authenticated provider.
// DELETE /api/provider/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProduct(c.Request.Context(), c.GetString("providerID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Checkout opens a payment session for products from one provider.
// POST /api/products/checkout
func (h *ProductHandler) Checkout(c *gin.Context) {
	var req models.ProductCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Svc.Checkout(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkoutUrl": session.URL, "total": session.TotalAmount})
}
