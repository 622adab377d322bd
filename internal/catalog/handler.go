package catalog

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type catalogHandler struct {
	log            *logrus.Entry
	catalogService CatalogService
}

func NewHandler(catalogService CatalogService, log *logrus.Entry) *catalogHandler {
	return &catalogHandler{
		log:            log,
		catalogService: catalogService,
	}
}

// Register mounts the catalog. Listing is public, every mutation needs a token.
func (h *catalogHandler) Register(router gin.IRouter, auth gin.HandlerFunc) {
	categories := router.Group("/categories")
	categories.GET("", h.listCategories)
	categories.GET("/:id", h.getCategory)
	categories.POST("", auth, h.createCategory)
	categories.PUT("/:id", auth, h.updateCategory)
	categories.DELETE("/:id", auth, h.deleteCategory)

	products := router.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/export", auth, h.exportProducts)
	products.GET("/category/:cateId", h.listProductsByCategory)
	products.GET("/:id", h.getProduct)
	products.POST("", auth, h.createProduct)
	products.PUT("/:id", auth, h.updateProduct)
	products.DELETE("/:id", auth, h.deleteProduct)
}

func (h *catalogHandler) listCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *catalogHandler) getCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *catalogHandler) createCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *catalogHandler) updateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), access.FromContext(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *catalogHandler) deleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), access.FromContext(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category removed"})
}

func (h *catalogHandler) listProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("cateId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *catalogHandler) listProductsByCategory(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Param("cateId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *catalogHandler) getProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandler) createProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), access.FromContext(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *catalogHandler) updateProduct(c *gin.Context) {
	var input ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), access.FromContext(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandler) deleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), access.FromContext(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

func (h *catalogHandler) exportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.catalogService.ExportProducts(c.Request.Context(), access.FromContext(c), &buf); err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
