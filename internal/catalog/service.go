package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/idgen"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, cateID string) (*Category, error)
	CreateCategory(ctx context.Context, caller access.Caller, input CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, caller access.Caller, cateID string, input CategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, caller access.Caller, cateID string) error

	ListProducts(ctx context.Context, cateID string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	FindProducts(ctx context.Context, productIDs []string) (map[string]Product, error)
	CreateProduct(ctx context.Context, caller access.Caller, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, caller access.Caller, productID string, input ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, caller access.Caller, productID string) error
	ExportProducts(ctx context.Context, caller access.Caller, w io.Writer) error
}

type catalogService struct {
	storage Storage
	logger  *logrus.Entry
}

func NewService(storage Storage, log *logrus.Entry) CatalogService {
	return &catalogService{
		storage: storage,
		logger:  log,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]Category, error) {
	return s.storage.ListCategories(ctx)
}

func (s *catalogService) GetCategory(ctx context.Context, cateID string) (*Category, error) {
	return s.storage.GetCategory(ctx, cateID)
}

func (s *catalogService) CreateCategory(ctx context.Context, caller access.Caller, input CategoryInput) (*Category, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.CateName)
	if name == "" {
		return nil, apperror.Validation("category name is required")
	}
	id, err := idgen.Resolve(idgen.Category, input.CateID)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	category := &Category{CateID: id, CateName: name}
	if err := s.storage.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, caller access.Caller, cateID string, input CategoryInput) (*Category, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.CateName)
	if name == "" {
		return nil, apperror.Validation("category name is required")
	}
	if err := s.storage.UpdateCategory(ctx, cateID, name); err != nil {
		return nil, err
	}
	return s.storage.GetCategory(ctx, cateID)
}

func (s *catalogService) DeleteCategory(ctx context.Context, caller access.Caller, cateID string) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	return s.storage.DeleteCategory(ctx, cateID)
}

func (s *catalogService) ListProducts(ctx context.Context, cateID string) ([]Product, error) {
	return s.storage.ListProducts(ctx, cateID)
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*Product, error) {
	return s.storage.GetProduct(ctx, productID)
}

func (s *catalogService) FindProducts(ctx context.Context, productIDs []string) (map[string]Product, error) {
	return s.storage.FindProducts(ctx, productIDs)
}

func (s *catalogService) CreateProduct(ctx context.Context, caller access.Caller, input ProductInput) (*Product, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.ProductName)
	if name == "" {
		return nil, apperror.Validation("product name is required")
	}
	if input.Price == nil {
		return nil, apperror.Validation("price is required")
	}
	if err := ValidatePrice(*input.Price); err != nil {
		return nil, err
	}
	id, err := idgen.Resolve(idgen.Product, input.ProductID)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, err := s.storage.GetCategory(ctx, input.CateID); err != nil {
		return nil, err
	}

	product := &Product{
		ProductID:   id,
		CateID:      input.CateID,
		ProductName: name,
		Description: input.Description,
		Price:       *input.Price,
		Image:       input.Image,
	}
	if err := s.storage.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Infof("created product %s in category %s", product.ProductID, product.CateID)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, caller access.Caller, productID string, input ProductUpdate) (*Product, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if input.CateID != nil {
		if _, err := s.storage.GetCategory(ctx, *input.CateID); err != nil {
			return nil, err
		}
		fields["cate_id"] = *input.CateID
	}
	if input.ProductName != nil {
		name := strings.TrimSpace(*input.ProductName)
		if name == "" {
			return nil, apperror.Validation("product name can not be empty")
		}
		fields["product_name"] = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if err := ValidatePrice(*input.Price); err != nil {
			return nil, err
		}
		fields["price"] = *input.Price
	}
	if input.Image != nil {
		fields["image"] = *input.Image
	}

	if len(fields) > 0 {
		if err := s.storage.UpdateProduct(ctx, productID, fields); err != nil {
			return nil, err
		}
	}
	return s.storage.GetProduct(ctx, productID)
}

func (s *catalogService) DeleteProduct(ctx context.Context, caller access.Caller, productID string) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	return s.storage.DeleteProduct(ctx, productID)
}

// ExportProducts writes the catalog as a single-sheet xlsx workbook.
func (s *catalogService) ExportProducts(ctx context.Context, caller access.Caller, w io.Writer) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}

	products, err := s.storage.ListProducts(ctx, "")
	if err != nil {
		return err
	}
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CateID] = c.CateName
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return apperror.Internal("failed to create sheet", err)
	}

	header := sheet.AddRow()
	for _, h := range []string{"ProductID", "ProductName", "CateID", "CateName", "Price", "Description", "Image", "UpdatedAt"} {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ProductID)
		row.AddCell().SetString(p.ProductName)
		row.AddCell().SetString(p.CateID)
		row.AddCell().SetString(names[p.CateID])
		row.AddCell().SetFloat(p.Price.InexactFloat64())
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
