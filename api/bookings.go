package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/Domenick1991/agentbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

type bookingResponse struct {
	BookingID     string              `json:"bookingId"`
	Status        string              `json:"status"`
	AgentID       string              `json:"agentId"`
	AgentName     string              `json:"agentName"`
	Service       string              `json:"service"`
	DateTime      string              `json:"dateTime"`
	Location      string              `json:"location"`
	Duration      string              `json:"duration"`
	Amount        float64             `json:"amount"`
	PaymentMethod string              `json:"paymentMethod"`
	TransactionID string              `json:"transactionId,omitempty"`
	CreatedAt     string              `json:"createdAt"`
	Steps         []domain.StatusStep `json:"steps,omitempty"`
}

type reviewResponse struct {
	ID        int64  `json:"id"`
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	CreatedAt string `json:"createdAt"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.status)
	router.POST("/:id/review", h.review)
	router.PATCH("/:id/status", h.advance)
}

func (h *BookingHandler) status(c *gin.Context) {
	view, err := h.service.GetBookingStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(view.Booking, view.Steps))
}

func (h *BookingHandler) review(c *gin.Context) {
	var req booking.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	review, err := h.service.SubmitReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reviewResponse{
		ID:        review.ID,
		BookingID: review.BookingID,
		Rating:    review.Rating,
		Review:    review.Text,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) advance(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.service.AdvanceBookingStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated, flow.Tracker(updated.Status)))
}

func toBookingResponse(b *domain.Booking, steps []domain.StatusStep) bookingResponse {
	return bookingResponse{
		BookingID:     b.ID,
		Status:        string(b.Status),
		AgentID:       b.Data.AgentID,
		AgentName:     b.Data.AgentName,
		Service:       b.Data.Service,
		DateTime:      b.Data.DateTime,
		Location:      b.Data.Location.Title(),
		Duration:      b.Data.Duration,
		Amount:        b.Amount,
		PaymentMethod: string(b.PaymentMethod),
		TransactionID: b.TransactionID,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		Steps:         steps,
	}
}
