package handler

import (
	"passr/internal/usecase"
	"passr/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type registerPushTokenRequest struct {
	Token string `json:"token"`
}

// RegisterPushToken stores the caller's device token. An empty token clears
// the registration, stopping all pushes to that user.
func (h *UserHandler) RegisterPushToken(c echo.Context) error {
	var req registerPushTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.userUseCase.RegisterPushToken(c.Request().Context(), userID, req.Token); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "registered"})
}
