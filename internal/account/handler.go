package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

type accountHandler struct {
	log            *logrus.Entry
	accountService AccountService
}

func NewHandler(accountService AccountService, log *logrus.Entry) *accountHandler {
	return &accountHandler{
		log:            log,
		accountService: accountService,
	}
}

func (h *accountHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	accounts := router.Group("/accounts")
	accounts.POST("/register", h.register)
	accounts.POST("/login", h.login)

	protected := accounts.Group("", auth)
	protected.GET("/me", h.me)
	protected.PUT("/change-password", h.changePassword)
	protected.GET("", h.list)
	protected.GET("/:email", h.get)
	protected.PUT("/:email", h.update)
	protected.DELETE("/:email", h.delete)
}

func (h *accountHandler) register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *accountHandler) login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	result, err := h.accountService.Login(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) me(c *gin.Context) {
	account, err := h.accountService.Me(c.Request.Context(), access.FromContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) changePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	if err := h.accountService.ChangePassword(c.Request.Context(), access.FromContext(c), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *accountHandler) list(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), access.FromContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *accountHandler) get(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), access.FromContext(c), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), access.FromContext(c), c.Param("email"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) delete(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Request.Context(), access.FromContext(c), c.Param("email")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account removed"})
}
