package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentHandler_list(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAgentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/agents", nil)

	mockService.On("ListAgents", c.Request.Context()).Return([]domain.Agent{sarah}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []agentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "Sarah Johnson", response[0].Name)
	assert.Equal(t, 80.0, response[0].Price)

	mockService.AssertExpectations(t)
}

func TestAgentHandler_listUnavailable(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewAgentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/agents", nil)

	mockService.On("ListAgents", c.Request.Context()).Return(nil, domain.NewTransientError("list agents", errors.New("db down")))

	handler.list(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAgentHandler_get(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		agent          *domain.Agent
		err            error
		expectedStatus int
	}{
		{name: "Found", id: "1", agent: &sarah, expectedStatus: http.StatusOK},
		{name: "Missing", id: "99", err: domain.ErrAgentNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockCatalogUseCase{}
			handler := NewAgentHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tc.id}}
			c.Request = httptest.NewRequest("GET", "/agents/"+tc.id, nil)

			if tc.err != nil {
				mockService.On("FetchAgent", c.Request.Context(), tc.id).Return(nil, tc.err)
			} else {
				mockService.On("FetchAgent", c.Request.Context(), tc.id).Return(tc.agent, nil)
			}

			handler.get(c)

			assert.Equal(t, tc.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/options", nil)

	options(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response optionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Dates, 5)
	assert.Len(t, response.Times, 8)
	assert.Len(t, response.Locations, 2)
	assert.Len(t, response.PaymentMethods, 2)
}
