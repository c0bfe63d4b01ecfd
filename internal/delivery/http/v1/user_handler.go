package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(rg *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := rg.Group("/users")
	{
		users.POST("/sync", handler.Sync)
		users.GET("/:externalId", handler.Get)
		users.PUT("/:externalId/profile", handler.UpdateProfile)
		users.POST("/:externalId/saved-jobs/:jobId", handler.ToggleSavedJob)
		users.GET("/:externalId/saved-jobs", handler.ListSavedJobs)
	}
}

// Sync godoc
// @Summary      Sync a user record
// @Description  Ensures a user document exists for the external identity; repeat calls refresh profile basics.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.SyncUserInput  true  "User JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /users/sync [post]
func (h *UserHandler) Sync(c *gin.Context) {
	var req domain.SyncUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.Sync(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User synced successfully", user)
}

// Get godoc
// @Summary      Get a user by external id
// @Tags         users
// @Produce      json
// @Param        externalId  path  string  true  "External user id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{externalId} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.GetByExternalID(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateProfile godoc
// @Summary      Update a user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        externalId  path  string                     true  "External user id"
// @Param        profile     body  domain.UpdateProfileInput  true  "Profile JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{externalId}/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), c.Param("externalId"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// ToggleSavedJob godoc
// @Summary      Save or unsave a job
// @Description  Saves the job when not yet saved, removes it otherwise.
// @Tags         users
// @Produce      json
// @Param        externalId  path  string  true  "External user id"
// @Param        jobId       path  string  true  "Job id"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{externalId}/saved-jobs/{jobId} [post]
func (h *UserHandler) ToggleSavedJob(c *gin.Context) {
	saved, err := h.userUC.ToggleSavedJob(c.Request.Context(), c.Param("externalId"), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}

	message := "Job removed from saved jobs"
	if saved {
		message = "Job saved successfully"
	}
	response.Success(c, http.StatusOK, message, gin.H{"saved": saved})
}

// ListSavedJobs godoc
// @Summary      List a user's saved jobs
// @Tags         users
// @Produce      json
// @Param        externalId  path  string  true  "External user id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{externalId}/saved-jobs [get]
func (h *UserHandler) ListSavedJobs(c *gin.Context) {
	jobs, err := h.userUC.ListSavedJobs(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs retrieved successfully", jobs)
}
