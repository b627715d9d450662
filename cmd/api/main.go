package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/config"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/engine"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/handler"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/middleware"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("main(): Failed to load config: ", err)
	}
	auth.Init(cfg.AppSecret)

	storage.InitDB(cfg.DatabaseURL)
	defer storage.CloseDB()

	sessions, err := memory.New(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		log.Fatal("main(): Failed to connect to redis: ", err)
	}
	defer sessions.Close()

	providers := auth.NewRegistry(cfg.OAuth)
	merger := engine.NewMerger(engine.NewNoblty(), engine.NewAastrax(sessions))

	authHandler := handler.NewAuthHandler(cfg, sessions, providers)
	chatHandler := handler.NewChatHandler(merger, cfg.AuditEncKey)
	wsHandler := handler.NewWSHandler(sessions, merger)
	keyHandler := handler.NewKeyHandler()
	trainingHandler := handler.NewTrainingHandler()

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-API-Key")
	router.Use(cors.New(corsConfig))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handler.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OAuth 로그인은 별도의 엄격한 제한 (5/min)
	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/:provider/login", rateLimitByIP(rate.Every(12*time.Second), 5), authHandler.HandleLogin)
		authRoutes.GET("/:provider/callback", authHandler.HandleCallback)
		authRoutes.POST("/logout", middleware.AuthMiddleware(sessions), authHandler.HandleLogout)
	}

	// 기본 제한 60/min, 전부 세션 보호
	protected := router.Group("/api")
	protected.Use(rateLimitByIP(rate.Every(time.Second), 60))
	{
		protected.GET("/profile", middleware.AuthMiddleware(sessions), authHandler.HandleProfile)

		// 챗은 세션 또는 API 키 인증 둘 다 허용
		protected.POST("/ask", middleware.SessionOrKeyMiddleware(sessions), chatHandler.HandleAsk)

		keys := protected.Group("/keys", middleware.AuthMiddleware(sessions))
		{
			keys.POST("", rateLimitByIP(rate.Every(20*time.Second), 3), keyHandler.HandleCreateKey)
			keys.GET("", keyHandler.HandleListKeys)
			keys.DELETE("/:id", keyHandler.HandleRevokeKey)
		}

		training := protected.Group("/training",
			middleware.AuthMiddleware(sessions), middleware.OwnerMiddleware(cfg.OwnerEmail))
		{
			training.POST("", trainingHandler.HandleCreateTraining)
			training.GET("", trainingHandler.HandleListTraining)
		}
	}

	router.GET("/ws/chat", wsHandler.HandleChatSocket)

	log.Fatal(router.Run(":" + cfg.Port))
}

// IP 기준 토큰 버킷 제한, 한도 초과 시 429
func rateLimitByIP(r rate.Limit, burst int) gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(r, burst), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
	})
}
