package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type paymentHandler struct {
	log            *logrus.Entry
	paymentService PaymentService
}

func NewHandler(paymentService PaymentService, log *logrus.Entry) *paymentHandler {
	return &paymentHandler{
		log:            log,
		paymentService: paymentService,
	}
}

func (h *paymentHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	methods := router.Group("/payment-methods", auth)
	methods.GET("", h.list)
	methods.GET("/:id", h.get)
	methods.POST("", h.create)
	methods.PUT("/:id", h.update)
	methods.DELETE("/:id", h.delete)
}

func (h *paymentHandler) list(c *gin.Context) {
	methods, err := h.paymentService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *paymentHandler) get(c *gin.Context) {
	method, err := h.paymentService.GetPaymentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, method)
}

func (h *paymentHandler) create(c *gin.Context) {
	var input PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	method, err := h.paymentService.CreatePaymentMethod(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, method)
}

func (h *paymentHandler) update(c *gin.Context) {
	var input PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	method, err := h.paymentService.UpdatePaymentMethod(c.Request.Context(), access.FromContext(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, method)
}

func (h *paymentHandler) delete(c *gin.Context) {
	if err := h.paymentService.DeletePaymentMethod(c.Request.Context(), access.FromContext(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment method removed"})
}
