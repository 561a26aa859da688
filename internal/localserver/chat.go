package localserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// handleChat answers with a deterministic canned responder; the hosted
// API fronts a real assistant, locally we only need plausible turns.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	account := s.account(c)
	reply := cannedReply(req.Message)

	log := ChatLog{
		AccountID: account.ID,
		Message:   req.Message,
		Response:  reply,
		CreatedAt: s.clock(),
	}
	if err := s.db.Create(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func cannedReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi "):
		return "Hello! What would you like to practice today?"
	case strings.Contains(lower, "mean"):
		return "Good question. Try looking the word up in your dictionary, then use it in a sentence of your own."
	case strings.HasSuffix(strings.TrimSpace(message), "?"):
		return fmt.Sprintf("Interesting question. Here is a way to think about it: %q uses vocabulary worth adding to your cycle.", message)
	default:
		return "Nice sentence! Watch your word order, and try rephrasing it with a synonym."
	}
}

func (s *Server) handleChatHistory(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	account := s.account(c)

	var logs []ChatLog
	err := s.db.Where("account_id = ?", account.ID).
		Order("id desc").
		Offset(p.Skip).
		Limit(p.Limit).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, log := range logs {
		items = append(items, gin.H{
			"id":         log.ID,
			"message":    log.Message,
			"response":   log.Response,
			"created_at": log.CreatedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, items)
}
