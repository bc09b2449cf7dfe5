package handler

import (
	catalogapp "github.com/dotmart/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Category created successfully", category)
}

// List godoc
// @Summary      List categories by name
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Categories fetched successfully", categories)
}

// GetByID godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response
// @Router       /categories/{categoryId} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "categoryId", "")
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category fetched successfully", category)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID"
// @Param        request body catalogapp.UpdateCategoryRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /categories/{categoryId} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "categoryId", "")
	if !ok {
		return
	}
	var req catalogapp.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category updated successfully", category)
}

// Delete godoc
// @Summary      Delete an unreferenced category
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response "still referenced by products"
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "categoryId", "")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Category deleted successfully", nil)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response "slug already exists"
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product created successfully", product)
}

// List godoc
// @Summary      List enabled products
// @Tags         products
// @Produce      json
// @Param        search    query string false "Case-insensitive name filter"
// @Param        category  query string false "Category id or name"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Page size (default 20, max 100)"
// @Param        sortOrder query string false "asc or desc by category name"
// @Success      200 {object} dto.Response{data=catalogapp.ProductListResponse}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query catalogapp.ProductListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	products, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Products fetched successfully", products)
}

// Search godoc
// @Summary      Full-text product search
// @Tags         products
// @Produce      json
// @Param        q     query string false "Search text"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Page size (default 20, max 100)"
// @Success      200 {object} dto.Response{data=catalogapp.ProductListResponse}
// @Router       /products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var query catalogapp.ProductSearchQuery
	if !h.BindQuery(c, &query) {
		return
	}
	products, err := h.productService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Products fetched successfully", products)
}

// GetByID godoc
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /product/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "id", "Invalid product id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product fetched successfully", product)
}

// GetBySlug godoc
// @Summary      Get an enabled product by slug
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product fetched successfully", product)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productId path string true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /products/{productId} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "productId", "Invalid product id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product updated successfully", product)
}

// Delete godoc
// @Summary      Disable a product
// @Tags         products
// @Produce      json
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /products/{productId} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "productId", "Invalid product id")
	if !ok {
		return
	}
	product, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Product disabled successfully", product)
}
