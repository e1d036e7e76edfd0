package api

import (
	"net/http"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	service catalog.CatalogUseCase
}

type agentResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Service      string   `json:"service"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews"`
	Description  string   `json:"description,omitempty"`
	Services     []string `json:"services,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Location     string   `json:"location,omitempty"`
}

func NewAgentHandler(service catalog.CatalogUseCase) *AgentHandler {
	return &AgentHandler{service: service}
}

func (h *AgentHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *AgentHandler) list(c *gin.Context) {
	agents, err := h.service.ListAgents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]agentResponse, 0, len(agents))
	for _, a := range agents {
		resp = append(resp, toAgentResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AgentHandler) get(c *gin.Context) {
	agent, err := h.service.FetchAgent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgentResponse(*agent))
}

func toAgentResponse(a domain.Agent) agentResponse {
	return agentResponse{
		ID:           a.ID,
		Name:         a.Name,
		Service:      a.Service,
		Price:        a.BasePrice,
		Rating:       a.Rating,
		ReviewsCount: a.ReviewsCount,
		Description:  a.Description,
		Services:     a.Services,
		Availability: a.Availability,
		Location:     a.Location,
	}
}

type optionsResponse struct {
	Dates              []domain.DateOption     `json:"dates"`
	Times              []string                `json:"times"`
	Locations          []domain.LocationOption `json:"locations"`
	PaymentMethods     []domain.PaymentOption  `json:"paymentMethods"`
	CancellationPolicy string                  `json:"cancellationPolicy"`
}

// options serves the fixed choice lists every stage renders.
func options(c *gin.Context) {
	c.JSON(http.StatusOK, optionsResponse{
		Dates:              domain.DateOptions,
		Times:              domain.TimeOptions,
		Locations:          domain.LocationOptions,
		PaymentMethods:     domain.PaymentOptions,
		CancellationPolicy: domain.CancellationPolicy,
	})
}
