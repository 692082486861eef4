package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService lead.Service
	logger      *Logger.Logger
}

func NewLeadHandler(leadService lead.Service, logger *Logger.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// SubmitQuote creates a lead from the quote form
// @Summary Submit a quote request
// @Description Creates a lead from the quote form and notifies the crew channel
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body lead.CreateLeadRequest true "Quote form data"
// @Success 201 {object} QuoteResponse "Created lead"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quote [post]
func (h *LeadHandler) SubmitQuote(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	created, err := h.leadService.SubmitQuote(c, req)
	if err != nil {
		h.logger.Errorf("submit quote error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, QuoteResponse{
		Message: "Quote request received",
		Lead:    *created,
	})
}

// GetLead returns one lead by id
// @Summary Get a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} LeadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	l, err := h.leadService.GetLead(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, lead.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Lead not found"})
			return
		}
		h.logger.Errorf("get lead error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, LeadResponse{Lead: *l})
}

// ListLeads returns a page of leads
// @Summary List leads
// @Tags Leads
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} ListLeadsResponse
// @Failure 500 {object} ErrorResponse
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	leads, total, err := h.leadService.ListLeads(c, offset, limit)
	if err != nil {
		h.logger.Errorf("list leads error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ListLeadsResponse{
		Leads: leads,
		Pagination: PaginationInfo{
			Total:  total,
			Offset: offset,
			Limit:  limit,
		},
	})
}

// RegisterLeadRoutes registers lead routes
func (h *LeadHandler) RegisterLeadRoutes(r *gin.RouterGroup) {
	r.POST("/quote", h.SubmitQuote)
	r.GET("/leads", h.ListLeads)
	r.GET("/leads/:id", h.GetLead)
}
