package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type cartHandler struct {
	log         *logrus.Entry
	cartService CartService
}

func NewHandler(cartService CartService, log *logrus.Entry) *cartHandler {
	return &cartHandler{
		log:         log,
		cartService: cartService,
	}
}

func (h *cartHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	carts := router.Group("/carts", auth)
	carts.GET("", h.mine)
	carts.POST("", h.create)
	carts.GET("/all", h.list)
	carts.GET("/email/:email", h.getByEmail)
	carts.GET("/:cartId", h.get)
	carts.DELETE("/:cartId", h.delete)
	carts.GET("/:cartId/items", h.items)
	carts.POST("/items", h.addItem)
	carts.PUT("/:cartId/items/:productId", h.setQuantity)
	carts.DELETE("/:cartId/items/:productId", h.removeItem)
}

func (h *cartHandler) mine(c *gin.Context) {
	cart, err := h.cartService.GetOrCreateCart(c.Request.Context(), access.FromContext(c), "")
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) create(c *gin.Context) {
	var input CartInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.Error(apperror.Validation(err.Error()))
			return
		}
	}

	cart, err := h.cartService.GetOrCreateCart(c.Request.Context(), access.FromContext(c), input.Email)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) list(c *gin.Context) {
	carts, err := h.cartService.ListCarts(c.Request.Context(), access.FromContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (h *cartHandler) getByEmail(c *gin.Context) {
	cart, err := h.cartService.GetCartByEmail(c.Request.Context(), access.FromContext(c), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), access.FromContext(c), c.Param("cartId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) delete(c *gin.Context) {
	if err := h.cartService.DeleteCart(c.Request.Context(), access.FromContext(c), c.Param("cartId")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart removed"})
}

func (h *cartHandler) items(c *gin.Context) {
	lines, err := h.cartService.ListItems(c.Request.Context(), access.FromContext(c), c.Param("cartId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *cartHandler) addItem(c *gin.Context) {
	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *cartHandler) setQuantity(c *gin.Context) {
	var input QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	item, err := h.cartService.SetItemQuantity(c.Request.Context(), access.FromContext(c), c.Param("cartId"), c.Param("productId"), *input.Quantity)
	if err != nil {
		c.Error(err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"message": "cart item removed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *cartHandler) removeItem(c *gin.Context) {
	if err := h.cartService.RemoveItem(c.Request.Context(), access.FromContext(c), c.Param("cartId"), c.Param("productId")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart item removed"})
}
