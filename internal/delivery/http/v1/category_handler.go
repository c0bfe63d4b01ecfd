package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(rg *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}

	categories := rg.Group("/categories")
	{
		categories.GET("", handler.List)
		categories.GET("/:id", handler.GetDetails)
		categories.POST("", handler.Create)
		categories.PUT("/:id", handler.Update)
		categories.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a job category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        category  body      domain.CategoryInput  true  "Category JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	category, err := h.categoryUC.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

// List godoc
// @Summary      List job categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryUC.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// GetDetails godoc
// @Summary      Get category details
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category id"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetDetails(c *gin.Context) {
	category, err := h.categoryUC.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id        path  string                true  "Category id"
// @Param        category  body  domain.CategoryInput  true  "Category JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req domain.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	category, err := h.categoryUC.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", category)
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category id"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryUC.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
