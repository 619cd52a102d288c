package main

import (
	"log"

	"github.com/smart-correction/quizphere/internal/config"
	"github.com/smart-correction/quizphere/internal/database"
	"github.com/smart-correction/quizphere/internal/handlers"
	"github.com/smart-correction/quizphere/internal/middleware"
	"github.com/smart-correction/quizphere/internal/services"
	"github.com/smart-correction/quizphere/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Quizphere API
// @version         1.0
// @description     API for the quiz authoring tool: quizzes, questions, AI generation and preview runs
// @host            localhost:8001
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	runService := services.NewRunService(db)
	aiService := services.NewAIGenerateService(cfg.GenAPIURL, cfg.GenAPIKey)

	runService.SetNotifier(func(state services.RunState) {
		hub.Broadcast(state.RunID, ws.WSMessage{Type: "run_state", Data: state})
	})

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(quizService, cfg.UploadDir)
	aiHandler := handlers.NewAIGenerateHandler(quizService, aiService)
	runHandler := handlers.NewRunHandler(runService, hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/run/:id", runHandler.HandleRunWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("/ai-status", aiHandler.CheckAI)
			quizzes.POST("/generate", aiHandler.Generate)
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.POST("/import", quizHandler.ImportQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			quizzes.POST("/:id/publish", quizHandler.PublishQuiz)
			quizzes.POST("/:id/questions", questionHandler.CreateQuestion)
			quizzes.PUT("/:id/reorder", quizHandler.ReorderQuestions)
			quizzes.GET("/:id/export", quizHandler.ExportQuiz)
			quizzes.GET("/:id/results", runHandler.ListResults)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
			questions.POST("/:id/images", questionHandler.AddQuestionImage)
		}

		images := api.Group("/images")
		images.Use(middleware.JWTAuth(authService))
		{
			images.DELETE("/:id", questionHandler.DeleteQuestionImage)
		}

		upload := api.Group("/upload")
		upload.Use(middleware.JWTAuth(authService))
		{
			upload.POST("", questionHandler.UploadMedia)
		}

		runs := api.Group("/runs")
		runs.Use(middleware.JWTAuth(authService))
		{
			runs.POST("", runHandler.StartRun)
			runs.GET("/:id", runHandler.GetRunState)
			runs.POST("/:id/answer", runHandler.SelectAnswer)
			runs.POST("/:id/next", runHandler.NextQuestion)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
