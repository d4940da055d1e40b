package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"salespipe/internal/middleware"
	"salespipe/internal/models"
	"salespipe/internal/scope"
	"salespipe/internal/services"
	"salespipe/internal/stage"
)

type OpportunityHandler struct {
	service   *services.OpportunityService
	dashboard *services.DashboardService
}

func NewOpportunityHandler(service *services.OpportunityService, dashboard *services.DashboardService) *OpportunityHandler {
	return &OpportunityHandler{service: service, dashboard: dashboard}
}

// requesterScope resolves the caller's visibility scope once per request.
func (h *OpportunityHandler) requesterScope(c *gin.Context) (models.UserProfile, scope.Scope, bool) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return models.UserProfile{}, scope.Scope{}, false
	}
	sc, _, err := h.dashboard.ResolveScope(u)
	if err != nil {
		fail(c, err)
		return models.UserProfile{}, scope.Scope{}, false
	}
	return u, sc, true
}

type createOpportunityRequest struct {
	Name     string          `json:"name" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
}

// @Summary  Create opportunity
// @Tags     Opportunities
// @Accept   json
// @Produce  json
// @Param    opportunity  body      createOpportunityRequest  true  "New opportunity"
// @Success  201          {object}  models.Opportunity
// @Router   /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req createOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	o := &models.Opportunity{
		Name:     req.Name,
		Amount:   req.Amount,
		Currency: req.Currency,
		OwnerID:  u.ID,
	}
	created, err := h.service.Create(o)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary  Get opportunity
// @Tags     Opportunities
// @Produce  json
// @Param    id   path      int  true  "Opportunity ID"
// @Success  200  {object}  models.Opportunity
// @Router   /opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	o, err := h.service.GetVisible(id, sc)
	if err != nil {
		fail(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary  List opportunities visible to the requester
// @Tags     Opportunities
// @Produce  json
// @Success  200  {array}  models.Opportunity
// @Router   /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	status := c.Query("status")
	stageLabel := c.Query("stage")
	from := c.Query("from")
	to := c.Query("to")

	var (
		opps []*models.Opportunity
		err  error
	)
	if status != "" || stageLabel != "" || from != "" || to != "" {
		opps, err = h.service.Filter(sc, status, stageLabel, from, to, limit, offset)
	} else {
		opps, err = h.service.ListScoped(sc, limit, offset)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opps)
}

type updateOpportunityRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// @Summary  Update opportunity details
// @Description  Name, amount and currency only; lifecycle fields move through the transition endpoints
// @Tags     Opportunities
// @Accept   json
// @Produce  json
// @Param    id  path  int  true  "Opportunity ID"
// @Success  200  {object}  models.Opportunity
// @Router   /opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	patch := &models.Opportunity{Amount: req.Amount, Currency: req.Currency}
	o, err := h.service.UpdateDetails(id, sc, req.Name, patch)
	if err != nil {
		fail(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

type advanceRequest struct {
	Evidence      string    `json:"evidence" binding:"required"`
	NextStepTitle string    `json:"next_step_title"`
	NextStepDue   time.Time `json:"next_step_due" binding:"required"`
}

// @Summary  Advance one stage
// @Description  Stores evidence for the stage being left and moves exactly one stage forward
// @Tags     Opportunities
// @Accept   json
// @Produce  json
// @Param    id       path  int             true  "Opportunity ID"
// @Param    request  body  advanceRequest  true  "Evidence and next step"
// @Success  200  {object}  models.Opportunity
// @Router   /opportunities/{id}/advance [post]
func (h *OpportunityHandler) Advance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	o, err := h.service.Advance(id, sc, req.Evidence, models.NextStep{Title: req.NextStepTitle, DueDate: req.NextStepDue})
	h.respondTransition(c, o, err)
}

// @Summary  Mark won
// @Tags     Opportunities
// @Produce  json
// @Param    id  path  int  true  "Opportunity ID"
// @Success  200  {object}  models.Opportunity
// @Router   /opportunities/{id}/won [post]
func (h *OpportunityHandler) MarkWon(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	o, err := h.service.MarkWon(id, sc)
	h.respondTransition(c, o, err)
}

type markLostRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// @Summary  Mark lost
// @Tags     Opportunities
// @Accept   json
// @Produce  json
// @Param    id       path  int              true  "Opportunity ID"
// @Param    request  body  markLostRequest  true  "Loss reason"
// @Success  200  {object}  models.Opportunity
// @Router   /opportunities/{id}/lost [post]
func (h *OpportunityHandler) MarkLost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req markLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, sc, ok := h.requesterScope(c)
	if !ok {
		return
	}
	o, err := h.service.MarkLost(id, sc, req.Reason, req.Note)
	h.respondTransition(c, o, err)
}

// respondTransition maps the lifecycle outcome: AlreadyTerminal is a 200
// no-op carrying the unchanged record, everything else follows the taxonomy.
func (h *OpportunityHandler) respondTransition(c *gin.Context, o *models.Opportunity, err error) {
	if errors.Is(err, stage.ErrAlreadyTerminal) {
		c.JSON(http.StatusOK, gin.H{"no_op": "already_terminal", "opportunity": o})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary  Configured loss reasons
// @Tags     Opportunities
// @Produce  json
// @Success  200  {array}  string
// @Router   /opportunities/loss-reasons [get]
func (h *OpportunityHandler) LossReasons(c *gin.Context) {
	c.JSON(http.StatusOK, services.LossReasons)
}
