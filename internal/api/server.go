package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ubuntu-fest/leaderboard-api/docs"
	v1 "github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1"
	"github.com/ubuntu-fest/leaderboard-api/internal/api/middleware"
	"github.com/ubuntu-fest/leaderboard-api/internal/config"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
	"github.com/ubuntu-fest/leaderboard-api/internal/realtime"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository"
	"github.com/ubuntu-fest/leaderboard-api/internal/repository/dao"
	"github.com/ubuntu-fest/leaderboard-api/internal/service"
	"github.com/ubuntu-fest/leaderboard-api/internal/store"
)

type Server struct {
	Config     *config.AppConfig
	Router     *gin.Engine
	Scoreboard *service.Scoreboard
	Hub        *realtime.Hub
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	repo := repository.NewLedgerRepository(dao.NewCollegeDAO(db), dao.NewParticipationDAO(db))
	scoreboard := service.NewScoreboard(repo, store.New(), service.ScoreboardOptions{
		StrictDeductions: conf.Ledger.StrictDeductions,
	})

	return NewServerWithScoreboard(conf, scoreboard)
}

// NewServerWithScoreboard mounts the API on an existing scoreboard.
func NewServerWithScoreboard(conf *config.AppConfig, scoreboard *service.Scoreboard) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:     conf,
		Router:     engine,
		Scoreboard: scoreboard,
		Hub:        realtime.NewHub(),
	}

	s.MountMiddlewares()

	authHandler, err := s.initAuthHandler()
	if err != nil {
		return nil, err
	}
	liveHandler := v1.NewLiveHandler(scoreboard, s.Hub, conf.API.AllowedCORSDomains)
	scoreboard.OnChange(liveHandler.Publish)

	s.MountHandlers(
		authHandler,
		v1.NewScoreboardHandler(scoreboard),
		v1.NewEventHandler(scoreboard),
		liveHandler,
	)

	return s, nil
}

func (s *Server) initAuthHandler() (*v1.AuthHandler, error) {
	svc, err := service.NewAuthService(s.Config.Auth.Accounts)
	if err != nil {
		return nil, fmt.Errorf("service.NewAuthService -> %w", err)
	}

	return v1.NewAuthHandler(s.Config.API, svc), nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	scoreboardHandler *v1.ScoreboardHandler,
	eventHandler *v1.EventHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	verify := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	viewers := s.Router.Group(basePath, verify)
	{
		viewers.GET("/events", eventHandler.HandleGetEvents)
		viewers.GET("/events/stats", eventHandler.HandleGetEventStats)
		viewers.GET("/leaderboard", scoreboardHandler.HandleGetLeaderboard)
		viewers.GET("/colleges", scoreboardHandler.HandleGetColleges)
		viewers.GET("/colleges/:collegeID", scoreboardHandler.HandleGetCollege)
		viewers.GET("/live", liveHandler.HandleLive)
	}

	admins := s.Router.Group(basePath, verify, adminOnly)
	{
		admins.POST("/colleges", scoreboardHandler.HandleCreateCollege)
		admins.DELETE("/colleges/:collegeID", scoreboardHandler.HandleDeleteCollege)
		admins.POST("/colleges/:collegeID/awards", scoreboardHandler.HandleAwardPoints)
		admins.POST("/colleges/:collegeID/deductions", scoreboardHandler.HandleDeductPoints)
		admins.DELETE("/colleges/:collegeID/participations/:eventID", scoreboardHandler.HandleDeleteParticipation)
		admins.GET("/history", scoreboardHandler.HandleGetHistory)
		admins.GET("/stats", scoreboardHandler.HandleGetStats)
		admins.POST("/sync", scoreboardHandler.HandleSync)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Fest Leaderboard API"
	docs.SwaggerInfo.Description = "Points ledger and live leaderboard for the inter-college fest."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
