package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"pickpoint/internal/auth"
	"pickpoint/internal/domain"
	"pickpoint/internal/logger"
	"pickpoint/internal/metrics"
	"pickpoint/internal/repository"
	"pickpoint/internal/service"
)

type Server struct {
	engine  *gin.Engine
	orders  *service.OrderService
	roster  *service.RosterService
	ledger  *service.LedgerService
	gate    *auth.Gate
	metrics *metrics.Metrics
}

// Deps зависимости HTTP-сервера. Metrics и Log необязательны.
type Deps struct {
	Orders  *service.OrderService
	Roster  *service.RosterService
	Ledger  *service.LedgerService
	Gate    *auth.Gate
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewServer(d Deps) *Server {
	r := gin.New()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	r.Use(logger.RequestLog(log), gin.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	s := &Server{engine: r, orders: d.Orders, roster: d.Roster, ledger: d.Ledger, gate: d.Gate, metrics: d.Metrics}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	curator := s.gate.RequireCurator()

	v1 := s.engine.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET("stats", s.orderStats)
		orders.GET("barcode/:barcode", s.findByBarcode)
		orders.GET(":id", s.getOrder)
		orders.POST(":id/issue", s.issueOrder)
		orders.POST(":id/return", s.returnOrder)

		interns := v1.Group("/interns")
		interns.GET("", s.listInterns)
		interns.GET(":id", s.getIntern)
		interns.POST("", curator, s.addIntern)
		interns.DELETE(":id", curator, s.removeIntern)
		interns.POST(":id/warnings", curator, s.addWarning)
		interns.DELETE(":id/warnings/:warningId", curator, s.removeWarning)
		interns.POST(":id/withdraw", s.withdrawSalary)

		ledger := v1.Group("/ledger")
		ledger.GET("", s.getLedger)
		ledger.POST("withdraw", curator, s.withdrawCurator)

		v1.POST("/session/curator", s.curatorSession)
	}
}

// Order handlers
type createOrderReq struct {
	CustomerName string             `json:"customer_name"`
	Barcode      string             `json:"barcode"`
	Items        []domain.OrderItem `json:"items"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.CreateOrder(c, req.CustomerName, req.Barcode, req.Items)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Param q query string false "Customer name or barcode contains"
// @Param status query string false "waiting, issued or returned"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	f := repository.OrderFilter{
		Query:  c.Query("q"),
		Status: domain.OrderStatus(c.Query("status")),
	}
	list, err := s.orders.ListOrders(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Order counters by status
// @Tags orders
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /orders/stats [get]
func (s *Server) orderStats(c *gin.Context) {
	st, err := s.orders.Stats(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Find order by barcode
// @Tags orders
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/barcode/{barcode} [get]
func (s *Server) findByBarcode(c *gin.Context) {
	o, err := s.orders.FindByBarcode(c, c.Param("barcode"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type issueOrderReq struct {
	Actor string `json:"actor"`
}

// @Summary Hand off order
// @Description actor is "curator" or an intern id
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body issueOrderReq true "Actor"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/issue [post]
func (s *Server) issueOrder(c *gin.Context) {
	var req issueOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	actor, err := domain.ParseActor(req.Actor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor"})
		return
	}
	o, err := s.orders.Issue(c, c.Param("id"), actor)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type returnOrderReq struct {
	Reason       string  `json:"reason"`
	CreditIntern *string `json:"credit_intern,omitempty"`
}

// @Summary Return order
// @Description Reverses the hand-off commission, optionally crediting a helper intern
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body returnOrderReq true "Return"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/return [post]
func (s *Server) returnOrder(c *gin.Context) {
	var req returnOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.CreditIntern != nil && *req.CreditIntern == "" {
		req.CreditIntern = nil
	}
	o, err := s.orders.MarkReturned(c, c.Param("id"), req.Reason, req.CreditIntern)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Intern handlers
type internResp struct {
	domain.Intern
	Efficiency domain.Efficiency `json:"efficiency"`
}

func withEfficiency(in domain.Intern) internResp {
	return internResp{Intern: in, Efficiency: in.Efficiency()}
}

// @Summary List interns
// @Tags interns
// @Produce json
// @Success 200 {array} internResp
// @Router /interns [get]
func (s *Server) listInterns(c *gin.Context) {
	list, err := s.roster.ListInterns(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]internResp, 0, len(list))
	for _, in := range list {
		out = append(out, withEfficiency(in))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get intern
// @Tags interns
// @Produce json
// @Param id path string true "Intern ID"
// @Success 200 {object} internResp
// @Failure 404 {object} map[string]string
// @Router /interns/{id} [get]
func (s *Server) getIntern(c *gin.Context) {
	in, err := s.roster.GetIntern(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, withEfficiency(*in))
}

type addInternReq struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// @Summary Register intern
// @Tags interns
// @Accept json
// @Produce json
// @Security CuratorToken
// @Param input body addInternReq true "Intern"
// @Success 201 {object} internResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /interns [post]
func (s *Server) addIntern(c *gin.Context) {
	var req addInternReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in, err := s.roster.AddIntern(c, req.Name, req.Surname)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, withEfficiency(*in))
}

// @Summary Remove intern
// @Tags interns
// @Security CuratorToken
// @Param id path string true "Intern ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /interns/{id} [delete]
func (s *Server) removeIntern(c *gin.Context) {
	if err := s.roster.RemoveIntern(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addWarningReq struct {
	Reason string `json:"reason"`
}

// @Summary Warn intern
// @Tags interns
// @Accept json
// @Produce json
// @Security CuratorToken
// @Param id path string true "Intern ID"
// @Param input body addWarningReq true "Warning"
// @Success 201 {object} domain.Warning
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /interns/{id}/warnings [post]
func (s *Server) addWarning(c *gin.Context) {
	var req addWarningReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	w, err := s.roster.AddWarning(c, c.Param("id"), req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// @Summary Remove warning
// @Tags interns
// @Security CuratorToken
// @Param id path string true "Intern ID"
// @Param warningId path string true "Warning ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /interns/{id}/warnings/{warningId} [delete]
func (s *Server) removeWarning(c *gin.Context) {
	if err := s.roster.RemoveWarning(c, c.Param("id"), c.Param("warningId")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type withdrawResp struct {
	Amount decimal.Decimal `json:"amount"`
}

// @Summary Pay out intern salary
// @Tags interns
// @Produce json
// @Param id path string true "Intern ID"
// @Success 200 {object} withdrawResp
// @Failure 404 {object} map[string]string
// @Router /interns/{id}/withdraw [post]
func (s *Server) withdrawSalary(c *gin.Context) {
	amount, err := s.roster.Withdraw(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawResp{Amount: amount})
}

// Ledger handlers
type ledgerResp struct {
	CuratorBalance decimal.Decimal `json:"curator_balance"`
}

// @Summary Curator balance
// @Tags ledger
// @Produce json
// @Success 200 {object} ledgerResp
// @Router /ledger [get]
func (s *Server) getLedger(c *gin.Context) {
	b, err := s.ledger.Balance(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerResp{CuratorBalance: b})
}

// @Summary Pay out curator balance
// @Tags ledger
// @Produce json
// @Security CuratorToken
// @Success 200 {object} withdrawResp
// @Failure 401 {object} map[string]string
// @Router /ledger/withdraw [post]
func (s *Server) withdrawCurator(c *gin.Context) {
	amount, err := s.ledger.Withdraw(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawResp{Amount: amount})
}

type sessionReq struct {
	Code string `json:"code"`
}

type sessionResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary Leave intern mode
// @Description Exchanges the 6-digit access code for a curator token
// @Tags session
// @Accept json
// @Produce json
// @Param input body sessionReq true "Access code"
// @Success 200 {object} sessionResp
// @Failure 401 {object} map[string]string
// @Router /session/curator [post]
func (s *Server) curatorSession(c *gin.Context) {
	var req sessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	token, exp, err := s.gate.Issue(req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}
	maxAge := int(time.Until(exp).Seconds())
	c.SetCookie(auth.CookieCuratorToken, token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, sessionResp{Token: token, ExpiresAt: exp})
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrMissingReason):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnknownIntern):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrWrongCode):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
