package api

import (
	"CoinScope/internal/usecase"
	xhttp "CoinScope/pkg/http"
	xlogger "CoinScope/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the session-scoped dashboard API: session
// lifecycle, view rendering, and navigation.
type DashboardHandler struct {
	logger   *xlogger.Logger
	dash     *usecase.Dashboard
	sessions *usecase.SessionManager
}

func NewDashboardHandler(logger *xlogger.Logger, dash *usecase.Dashboard, sessions *usecase.SessionManager) *DashboardHandler {
	return &DashboardHandler{logger: logger, dash: dash, sessions: sessions}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/sessions", h.CreateSession)
	g.DELETE("/sessions/:id", h.EndSession)
	g.GET("/sessions/:id/view", h.View)
	g.POST("/sessions/:id/navigate", h.Navigate)
}

// NavigateRequest selects the next view, either through an explicit
// action or by naming the view directly (the menu selector case).
type NavigateRequest struct {
	Action string `json:"action" validate:"omitempty,oneof=view_prediction view_price_analysis"`
	View   string `json:"view" validate:"omitempty,oneof=price_analysis prediction"`
}

// SessionResponse is the envelope for all session endpoints: the active
// view plus its fully rendered payload.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	View      string      `json:"view"`
	Changed   bool        `json:"changed,omitempty"`
	Data      interface{} `json:"data"`
}

func (h *DashboardHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()
	id, nav := h.sessions.Create()

	payload, err := h.dash.Render(ctx, nav.Current())
	if err != nil {
		h.logger.Error("initial render failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, &SessionResponse{
		SessionID: id,
		View:      string(nav.Current()),
		Data:      payload,
	})
}

func (h *DashboardHandler) EndSession(c echo.Context) error {
	h.sessions.End(c.Param("id"))
	return xhttp.NoContentResponse(c)
}

func (h *DashboardHandler) View(c echo.Context) error {
	nav, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		return xhttp.NotFoundResponse(c, "session not found")
	}

	payload, err := h.dash.Render(c.Request().Context(), nav.Current())
	if err != nil {
		h.logger.Error("render failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, &SessionResponse{
		SessionID: c.Param("id"),
		View:      string(nav.Current()),
		Data:      payload,
	})
}

func (h *DashboardHandler) Navigate(c echo.Context) error {
	nav, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		return xhttp.NotFoundResponse(c, "session not found")
	}

	req := &NavigateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Action == "" && req.View == "" {
		return xhttp.BadRequestResponse(c, "either action or view is required")
	}

	ctx := c.Request().Context()
	var (
		payload interface{}
		changed bool
		err     error
	)
	if req.Action != "" {
		payload, changed, err = nav.Apply(ctx, usecase.Action(req.Action))
	} else {
		payload, changed, err = nav.Select(ctx, usecase.View(req.View))
	}
	if err != nil {
		h.logger.Error("navigation failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	// Idempotent no-op: the state did not change and nothing was
	// re-rendered; fetch the current view for the response body.
	if !changed {
		payload, err = h.dash.Render(ctx, nav.Current())
		if err != nil {
			h.logger.Error("render failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}

	return xhttp.SuccessResponse(c, &SessionResponse{
		SessionID: c.Param("id"),
		View:      string(nav.Current()),
		Changed:   changed,
		Data:      payload,
	})
}
