package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akorchagin/product-catalog/internal/events"
	"github.com/akorchagin/product-catalog/internal/logging"
	"github.com/akorchagin/product-catalog/internal/service"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer events.Producer
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password, req.Email); err != nil {
		he := translate(err)
		l.Warn("register_failed", "status", he.Code, "error", err)
		return he
	}

	publish(c, h.Producer, events.TopicUserEvents, req.Username, map[string]any{
		"type":     "user_registered",
		"username": req.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		he := translate(err)
		l.Warn("login_failed", "status", he.Code, "error", err)
		return he
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(res.User.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  res.User.ID,
		"username": res.User.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": res.Token,
		"user": userResponse{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
			Role:     res.User.Role.String(),
		},
	})
}
