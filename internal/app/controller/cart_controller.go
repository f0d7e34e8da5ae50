package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	apperrors "github.com/ikkim/gadgetshop-backend/internal/errors"
	"github.com/ikkim/gadgetshop-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// maxLineAmount caps the units a single request may put on a line.
const maxLineAmount = 10000

type AddLineRequest struct {
	Variant   string `json:"variant" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Amount    int    `json:"amount" binding:"required,gt=0,lte=10000"`
}

type SetLineAmountRequest struct {
	Amount int `json:"amount" binding:"required,gt=0,lte=10000"`
}

// GetCart returns the active cart with its products
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.ViewCart(customerID)
	if err != nil {
		respondServiceError(c, err, "view cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// OpenCart returns the active cart, creating it if needed
// POST /api/v1/cart
func (ctrl *CartController) OpenCart(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetOrCreateActiveCart(customerID)
	if err != nil {
		respondServiceError(c, err, "open cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// AddLine puts a product into the active cart
// POST /api/v1/cart/lines
func (ctrl *CartController) AddLine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add line request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cart, err := ctrl.cartService.GetOrCreateActiveCart(customerID)
	if err != nil {
		respondServiceError(c, err, "open cart")
		return
	}

	ref := model.ProductRef{ContentType: req.Variant, ObjectID: req.ProductID}
	line, err := ctrl.cartService.AddLine(cart.ID, ref, req.Amount)
	if err != nil {
		respondServiceError(c, err, "add cart line")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// SetLineAmount changes the amount of a line in the active cart
// PUT /api/v1/cart/lines/:id
func (ctrl *CartController) SetLineAmount(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetLineAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cart, err := ctrl.cartService.GetOrCreateActiveCart(customerID)
	if err != nil {
		respondServiceError(c, err, "open cart")
		return
	}

	line, err := ctrl.cartService.SetLineAmount(cart.ID, lineID, req.Amount)
	if err != nil {
		respondServiceError(c, err, "update cart line")
		return
	}

	c.JSON(http.StatusOK, gin.H{"line": line})
}

// RemoveLine drops a line from the active cart
// DELETE /api/v1/cart/lines/:id
func (ctrl *CartController) RemoveLine(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}
	lineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetOrCreateActiveCart(customerID)
	if err != nil {
		respondServiceError(c, err, "open cart")
		return
	}

	if err := ctrl.cartService.RemoveLine(cart.ID, lineID); err != nil {
		respondServiceError(c, err, "delete cart line")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart line removed"})
}
