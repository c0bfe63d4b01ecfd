package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(rg *gin.RouterGroup, writeLimited gin.HandlerFunc, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}

	contact := rg.Group("/contact")
	{
		contact.POST("", writeLimited, handler.Submit)
		contact.GET("/stats", handler.Stats)
		contact.GET("/user/:userId", handler.ListByUser)
		contact.POST("/:id/response", handler.Respond)
	}
}

// Submit godoc
// @Summary      Submit a contact inquiry
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.SubmitContactInput  true  "Contact Form Data"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.SubmitContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	contact, err := h.contactUC.Submit(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Your message has been sent successfully!", contact)
}

// Stats godoc
// @Summary      Contact inquiry statistics
// @Description  Aggregated inquiry counts by status, category and priority.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /contact/stats [get]
func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.contactUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Contact statistics retrieved successfully", stats)
}

// ListByUser godoc
// @Summary      List a user's contact inquiries
// @Tags         contact
// @Produce      json
// @Param        userId  path   string  true   "External user id"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size (max 100)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /contact/user/{userId} [get]
func (h *ContactHandler) ListByUser(c *gin.Context) {
	page, limit := pageParams(c)

	contacts, pagination, err := h.contactUC.ListByUser(c.Request.Context(), c.Param("userId"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Contact inquiries retrieved successfully", contacts, pagination)
}

// Respond godoc
// @Summary      Respond to a contact inquiry
// @Description  Attaches a response and marks the inquiry resolved. Responding again overwrites the previous response.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id        path  string                      true  "Contact inquiry id"
// @Param        response  body  domain.RespondContactInput  true  "Response payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contact/{id}/response [post]
func (h *ContactHandler) Respond(c *gin.Context) {
	var req domain.RespondContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	contact, err := h.contactUC.Respond(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response sent successfully", contact)
}
