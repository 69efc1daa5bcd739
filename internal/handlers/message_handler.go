package handlers

import (
	"net/http"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct-messaging HTTP requests
type MessageHandler struct {
	chatService *services.ChatService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(chatService *services.ChatService) *MessageHandler {
	return &MessageHandler{chatService: chatService}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages/:id", h.SendMessage)
	g.GET("/messages/:id", h.GetMessages)
}

// SendMessage sends a direct message to the user in the path
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	receiverID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.chatService.SendMessage(c.Request().Context(), currentUserID, receiverID, req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "newMessage": message})
}

// GetMessages returns the conversation with the user in the path, in send
// order; an empty list when no conversation exists yet
func (h *MessageHandler) GetMessages(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	otherID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.chatService.GetMessages(c.Request().Context(), currentUserID, otherID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messages": messages})
}
