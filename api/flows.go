package api

import (
	"net/http"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/Domenick1991/agentbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type FlowHandler struct {
	service booking.BookingUseCase
}

type startFlowRequest struct {
	AgentID string `json:"agentId"`
}

type sessionResponse struct {
	ID                 string              `json:"id"`
	Stage              flow.Stage          `json:"stage"`
	Draft              *domain.Draft       `json:"draft,omitempty"`
	LocationTitle      string              `json:"locationTitle,omitempty"`
	BookingData        *domain.BookingData `json:"bookingData,omitempty"`
	Breakdown          []flow.PriceLine    `json:"breakdown,omitempty"`
	Total              float64             `json:"total,omitempty"`
	CancellationPolicy string              `json:"cancellationPolicy,omitempty"`
	BookingID          string              `json:"bookingId,omitempty"`
	CanGoBack          bool                `json:"canGoBack"`
}

func NewFlowHandler(service booking.BookingUseCase) *FlowHandler {
	return &FlowHandler{service: service}
}

func (h *FlowHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.start)
	router.GET("/:id", h.get)
	router.PUT("/:id/datetime", h.selectDateTime)
	router.PUT("/:id/location", h.chooseLocation)
	router.POST("/:id/confirm", h.confirm)
	router.POST("/:id/back", h.back)
	router.POST("/:id/pay", h.pay)
	router.DELETE("/:id", h.cancel)
}

func (h *FlowHandler) start(c *gin.Context) {
	var req startFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.service.StartFlow(c.Request.Context(), req.AgentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *FlowHandler) get(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *FlowHandler) selectDateTime(c *gin.Context) {
	var req booking.DateTimeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.service.SelectDateTime(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *FlowHandler) chooseLocation(c *gin.Context) {
	var req booking.LocationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.service.ChooseLocation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *FlowHandler) confirm(c *gin.Context) {
	session, err := h.service.ConfirmSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *FlowHandler) back(c *gin.Context) {
	session, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *FlowHandler) pay(c *gin.Context) {
	var req booking.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.service.Pay(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b, nil))
}

func (h *FlowHandler) cancel(c *gin.Context) {
	if err := h.service.CancelFlow(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toSessionResponse renders the current frame. Location titles and the price
// breakdown are derived here, never stored.
func toSessionResponse(s *flow.Session) sessionResponse {
	resp := sessionResponse{ID: s.ID, Stage: s.Stage()}
	top, ok := s.Current()
	if !ok {
		return resp
	}

	draft := top.Draft
	resp.Draft = &draft
	resp.LocationTitle = draft.Location.Title()
	resp.BookingID = top.BookingID
	resp.CanGoBack = top.Stage != flow.StageStatus
	if top.BookingData != nil {
		data := *top.BookingData
		resp.BookingData = &data
		resp.Breakdown = flow.Breakdown(data)
		resp.Total = data.Total()
		if top.Stage == flow.StageSummary {
			resp.CancellationPolicy = domain.CancellationPolicy
		}
	}
	return resp
}
