package order

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type orderHandler struct {
	log          *logrus.Entry
	orderService OrderService
}

func NewHandler(orderService OrderService, log *logrus.Entry) *orderHandler {
	return &orderHandler{
		log:          log,
		orderService: orderService,
	}
}

func (h *orderHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	orders := router.Group("/orders", auth)
	orders.POST("", h.checkout)
	orders.GET("", h.list)
	orders.GET("/email/:email", h.listByEmail)
	orders.GET("/:id", h.get)
	orders.GET("/:id/items", h.items)
	orders.PUT("/:id", h.updateStatus)
	orders.DELETE("/:id", h.delete)
}

func (h *orderHandler) checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) list(c *gin.Context) {
	caller := access.FromContext(c)

	var (
		orders []Order
		err    error
	)
	if c.Query("all") == "true" {
		orders, err = h.orderService.ListOrders(c.Request.Context(), caller)
	} else {
		orders, err = h.orderService.ListOrdersByEmail(c.Request.Context(), caller, "")
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) listByEmail(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByEmail(c.Request.Context(), access.FromContext(c), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), access.FromContext(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) items(c *gin.Context) {
	items, err := h.orderService.ListItems(c.Request.Context(), access.FromContext(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *orderHandler) updateStatus(c *gin.Context) {
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), access.FromContext(c), c.Param("id"), input.Status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) delete(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), access.FromContext(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order removed"})
}
