package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(rg *gin.RouterGroup, writeLimited gin.HandlerFunc, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := rg.Group("/applications")
	{
		apps.POST("", writeLimited, handler.Submit)
		apps.GET("/user/:externalUserId", handler.ListByUser)
		apps.GET("/job/:jobId", handler.ListByJob)
		apps.PUT("/:applicationId/status", handler.UpdateStatus)
	}
}

type UpdateApplicationStatusRequest struct {
	ExternalUserID string `json:"externalUserId"`
	Status         string `json:"status"`
}

// pageParams reads ?page= and ?limit= with zero defaults; the usecases
// normalize them.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// Submit godoc
// @Summary      Submit a job application
// @Description  Apply to a job. The user record is created on first contact if it does not exist yet.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      domain.SubmitApplicationInput  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req domain.SubmitApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.applicationUC.Submit(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", result)
}

// ListByUser godoc
// @Summary      List a user's applications
// @Description  Returns the user's applications newest-first with a job snapshot per entry. Unknown users get an empty page.
// @Tags         applications
// @Produce      json
// @Param        externalUserId  path   string  true   "External user id"
// @Param        page            query  int     false  "Page number"
// @Param        limit           query  int     false  "Page size (max 100)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /applications/user/{externalUserId} [get]
func (h *ApplicationHandler) ListByUser(c *gin.Context) {
	page, limit := pageParams(c)

	apps, pagination, err := h.applicationUC.ListByUser(c.Request.Context(), c.Param("externalUserId"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Applications retrieved successfully", apps, pagination)
}

// ListByJob godoc
// @Summary      List a job's applicants
// @Description  Employer view: every application for the job, each with the applicant's public profile.
// @Tags         applications
// @Produce      json
// @Param        jobId  path   string  true   "Job id"
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size (max 100)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/job/{jobId} [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	page, limit := pageParams(c)

	list, err := h.applicationUC.ListByJob(c.Request.Context(), c.Param("jobId"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Applicants retrieved successfully", list, list.Pagination)
}

// UpdateStatus godoc
// @Summary      Update an application's status
// @Description  Moves one application through the review pipeline. The caller identity must own the application.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        applicationId  path  string                          true  "Application id"
// @Param        update         body  UpdateApplicationStatusRequest  true  "Status update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{applicationId}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	externalUserID := req.ExternalUserID
	if externalUserID == "" {
		externalUserID = c.GetString(string(domain.KeyUserID))
	}

	result, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.Param("applicationId"), externalUserID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated successfully", result)
}
