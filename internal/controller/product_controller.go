package controller

import (
	"errors"
	"strconv"

	"pilates_diario_backend/internal/service"
	"pilates_diario_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	ProductService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{ProductService: productService}
}

// ProductRequest is the admin payload for affiliate products.
type ProductRequest struct {
	Title         string `json:"title" binding:"required"`
	ImageURL      string `json:"imageUrl" binding:"required,url"`
	AffiliateLink string `json:"affiliateLink" binding:"required,url"`
	Category      string `json:"category"`
	Active        *bool  `json:"active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Title:         r.Title,
		ImageURL:      r.ImageURL,
		AffiliateLink: r.AffiliateLink,
		Category:      r.Category,
		Active:        r.Active,
	}
}

// Feed godoc
// @Summary Affiliate product feed
// @Description Active products for the store tab, newest first
// @Tags products
// @Produce  json
// @Param   category query string false "Filter by category"
// @Success 200 {object} util.Response{data=[]model.Product}
// @Router /api/products [get]
func (c *ProductController) Feed(ctx *gin.Context) {
	products, err := c.ProductService.GetFeed(ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, products)
}

// List godoc
// @Summary List products (admin)
// @Tags products
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	products, total, err := c.ProductService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  products,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Create godoc
// @Summary Create a product (admin)
// @Tags products
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ProductRequest true "Product"
// @Success 201 {object} util.Response{data=model.Product}
// @Router /api/admin/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	product, err := c.ProductService.Create(req.toInput())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, product)
}

// Update godoc
// @Summary Update a product (admin)
// @Tags products
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Product ID"
// @Param   body body ProductRequest true "Product"
// @Success 200 {object} util.Response{data=model.Product}
// @Failure 404 {object} util.Response
// @Router /api/admin/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	product, err := c.ProductService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, util.ErrProductNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, product)
}

// Delete godoc
// @Summary Delete a product (admin)
// @Tags products
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Product ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ProductService.Delete(id); err != nil {
		if errors.Is(err, util.ErrProductNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
