package address

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type addressHandler struct {
	log            *logrus.Entry
	addressService AddressService
}

func NewHandler(addressService AddressService, log *logrus.Entry) *addressHandler {
	return &addressHandler{
		log:            log,
		addressService: addressService,
	}
}

func (h *addressHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	addresses := router.Group("/addresses", auth)
	addresses.GET("", h.list)
	addresses.GET("/email/:email", h.listByEmail)
	addresses.GET("/:id", h.get)
	addresses.POST("", h.create)
	addresses.PUT("/:id", h.update)
	addresses.DELETE("/:id", h.delete)
}

func (h *addressHandler) list(c *gin.Context) {
	addresses, err := h.addressService.ListAddresses(c.Request.Context(), access.FromContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *addressHandler) listByEmail(c *gin.Context) {
	addresses, err := h.addressService.ListAddressesByEmail(c.Request.Context(), access.FromContext(c), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *addressHandler) get(c *gin.Context) {
	address, err := h.addressService.GetAddress(c.Request.Context(), access.FromContext(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *addressHandler) create(c *gin.Context) {
	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	address, err := h.addressService.CreateAddress(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *addressHandler) update(c *gin.Context) {
	var input AddressUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	address, err := h.addressService.UpdateAddress(c.Request.Context(), access.FromContext(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *addressHandler) delete(c *gin.Context) {
	if err := h.addressService.DeleteAddress(c.Request.Context(), access.FromContext(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address removed"})
}
