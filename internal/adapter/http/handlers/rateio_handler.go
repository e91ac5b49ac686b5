package handlers

import (
	"errors"
	"net/http"

	"quadra_billing/internal/adapter/http/dto/request"
	"quadra_billing/internal/adapter/http/dto/response"
	"quadra_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RateioHandler struct {
	usecase usecase.IRateioUseCase
}

func NewRateioHandler(uc usecase.IRateioUseCase) *RateioHandler {
	return &RateioHandler{usecase: uc}
}

// ConfigureRateio godoc
// @Summary      Validate and store how a reservation total is split
// @Description  A rejected split answers 422 with every violation found.
// @Tags         rateio
// @Accept       json
// @Produce      json
// @Param        reservation_id  path  string                 true  "Reservation ID"
// @Param        payload         body  request.RateioRequest  true  "Split"
// @Success      200  {object}  response.RateioResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      422  {object}  response.RateioResponse
// @Router       /reservations/{reservation_id}/rateio [post]
func (h *RateioHandler) ConfigureRateio(c *gin.Context) {
	var payload request.RateioRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}

	res, err := h.usecase.Configure(c.Request.Context(), c.Param("reservation_id"), payload.ToInput())
	if errors.Is(err, usecase.ErrRateioInvalid) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.FromRateioResult(res))
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRateioResult(res))
}

// PreviewRateio godoc
// @Summary      Compute a split without storing it
// @Tags         rateio
// @Accept       json
// @Produce      json
// @Param        payload  body  request.RateioPreviewRequest  true  "Split"
// @Success      200  {object}  response.RateioResponse
// @Router       /rateio/preview [post]
func (h *RateioHandler) PreviewRateio(c *gin.Context) {
	var payload request.RateioPreviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRateioResult(h.usecase.Preview(payload.Total, payload.ToInput())))
}
