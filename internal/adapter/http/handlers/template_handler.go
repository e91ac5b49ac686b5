package handlers

import (
	"net/http"

	"quadra_billing/internal/adapter/http/dto/request"
	"quadra_billing/internal/adapter/http/dto/response"
	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	usecase usecase.ITemplateUseCase
}

func NewTemplateHandler(uc usecase.ITemplateUseCase) *TemplateHandler {
	return &TemplateHandler{usecase: uc}
}

// GetTemplate godoc
// @Summary      Get a notification template
// @Tags         templates
// @Produce      json
// @Param        key  path  string  true  "Template key"
// @Success      200  {object}  response.TemplateResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /notification-templates/{key} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, err := h.usecase.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTemplate(t))
}

// PutTemplate godoc
// @Summary      Create or replace a notification template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        key      path  string                   true  "Template key"
// @Param        payload  body  request.TemplateRequest  true  "Template"
// @Success      200  {object}  response.TemplateResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /notification-templates/{key} [put]
func (h *TemplateHandler) PutTemplate(c *gin.Context) {
	var payload request.TemplateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}

	t, err := h.usecase.Upsert(c.Request.Context(), entities.NotificationTemplate{
		Key:     c.Param("key"),
		Channel: payload.Channel,
		Body:    payload.Body,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTemplate(t))
}
