package catalog

import "errors"

var (
	errCategoryNotFound = errors.New("category not found")
	errCategoryExists   = errors.New("category already exists")
	errCategoryInUse    = errors.New("category still has products")
	errProductNotFound  = errors.New("product not found")
	errProductExists    = errors.New("product already exists")
)
