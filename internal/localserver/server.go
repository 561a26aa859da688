package localserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stulang/stulang/internal/infrastructure/config"
)

// Server is the local development backend.
type Server struct {
	db     *gorm.DB
	log    *logrus.Logger
	jwtKey string
	clock  func() time.Time
	rand   func(n int) int
}

// NewServer wires the handlers onto an opened database.
func NewServer(db *gorm.DB, cfg config.LocalServerConfig, log *logrus.Logger) *Server {
	return &Server{
		db:     db,
		log:    log,
		jwtKey: cfg.JWTKey,
		clock:  time.Now,
		rand:   defaultRand,
	}
}

// Router builds the gin engine with the full route table.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.POST("/users/login", s.handleLogin)

	authed := router.Group("/")
	authed.Use(s.requireAuth())
	{
		authed.GET("/users/me", s.handleProfile)
		authed.GET("/users/vocabulary", s.handleLearnedWords)

		authed.POST("/cycles", s.handleCreateCycle)
		authed.GET("/cycles", s.handleCurrentCycle)
		authed.GET("/cycles/vocabulary", s.handleListCycleWords)
		authed.POST("/cycles/vocabulary", s.handleAddCycleWord)
		authed.GET("/cycles/practice-set", s.handlePracticeSet)
		authed.POST("/cycles/practice-results", s.handlePracticeResults)

		authed.GET("/vocabulary", s.handleListVocabulary)
		authed.GET("/vocabulary/search", s.handleSearchVocabulary)
		authed.GET("/vocabulary/topics", s.handleTopics)
		authed.GET("/vocabulary/levels", s.handleLevels)
		authed.GET("/vocabulary/statistics", s.handleStatistics)
		authed.GET("/vocabulary/:id", s.handleGetVocabulary)
		authed.POST("/vocabulary/mark-learned/:id", s.handleMarkLearned)

		authed.POST("/chat", s.handleChat)
		authed.GET("/chat/history", s.handleChatHistory)
	}

	return router
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.clock()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}
