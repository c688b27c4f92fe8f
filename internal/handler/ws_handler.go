package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/websocket"
	"github.com/yourusername/dailyquiz-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения дашборда преподавателя
type WSHandler struct {
	hub        *websocket.Hub
	jwtService *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// HandleConnection обрабатывает входящее WebSocket соединение.
// Браузер не может передать Authorization-заголовок при апгрейде,
// поэтому токен принимается query-параметром ?token=...
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token parameter"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		log.Printf("[WSHandler] Невалидный или истекший токен: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	// Живые события попыток видят только преподаватели и администраторы
	if claims.Role != entity.RoleFaculty && claims.Role != entity.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if err := websocket.ServeWS(h.hub, c.Writer, c.Request, claims.UserID); err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения для UserID %d: %v", claims.UserID, err)
	}
}
