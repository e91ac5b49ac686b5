package handlers

import (
	"net/http"

	"quadra_billing/internal/adapter/http/dto/request"
	"quadra_billing/internal/adapter/http/dto/response"
	"quadra_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	usecase usecase.IReservationUseCase
}

func NewReservationHandler(uc usecase.IReservationUseCase) *ReservationHandler {
	return &ReservationHandler{usecase: uc}
}

// CreateReservation godoc
// @Summary      Create a pending reservation with its participants
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CreateReservationRequest  true  "Reservation"
// @Success      201  {object}  response.ReservationResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var payload request.CreateReservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}

	res, participants, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromReservation(res, participants))
}

// GetReservation godoc
// @Summary      Get a reservation with its participants
// @Tags         reservations
// @Produce      json
// @Param        reservation_id  path  string  true  "Reservation ID"
// @Success      200  {object}  response.ReservationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /reservations/{reservation_id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.usecase.GetByID(ctx, c.Param("reservation_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	participants, err := h.usecase.ListParticipants(ctx, res.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservation(res, participants))
}
