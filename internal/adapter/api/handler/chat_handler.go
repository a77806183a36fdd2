package handler

import (
	"passr/internal/domain/entity"
	"passr/internal/usecase"
	"passr/pkg/response"
	"passr/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) GetChatByID(c echo.Context) error {
	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChat(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

type schedulePayloadRequest struct {
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Location string `json:"location"`
}

type sendMessageRequest struct {
	Content  string                  `json:"content"`
	Type     string                  `json:"type" validate:"omitempty,oneof=text image schedule schedule_acceptance schedule_rejection schedule_cancellation"`
	ImageURL string                  `json:"image" validate:"omitempty,url"`
	Schedule *schedulePayloadRequest `json:"schedule"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	input := usecase.SendMessageInput{
		Content:  req.Content,
		Type:     req.Type,
		ImageURL: req.ImageURL,
	}
	if req.Schedule != nil {
		input.Schedule = &entity.SchedulePayload{
			Date:     req.Schedule.Date,
			Time:     req.Schedule.Time,
			Location: req.Schedule.Location,
		}
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), c.Param("id"), senderID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), c.Param("id"), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}
