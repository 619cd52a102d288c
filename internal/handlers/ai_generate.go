package handlers

import (
	"net/http"

	"github.com/smart-correction/quizphere/internal/services"

	"github.com/gin-gonic/gin"
)

type AIGenerateHandler struct {
	quizService *services.QuizService
	aiService   *services.AIGenerateService
}

func NewAIGenerateHandler(quizService *services.QuizService, aiService *services.AIGenerateService) *AIGenerateHandler {
	return &AIGenerateHandler{
		quizService: quizService,
		aiService:   aiService,
	}
}

type GenerateQuizRequest struct {
	Topic            string `json:"topic" binding:"required,min=3"`
	Language         string `json:"language" example:"en"`
	ProficiencyLevel string `json:"proficiency_level" example:"intermediate"`
	SlideCount       int    `json:"slide_count" binding:"min=0,max=20"`
	ToneStyle        string `json:"tone_style" example:"conversational"`
	SourceURL        string `json:"source_url"`
	Type             string `json:"type" example:"quiz"`
}

// CheckAI godoc
// @Summary      Check if AI generation is available
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/quizzes/ai-status [get]
func (h *AIGenerateHandler) CheckAI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.aiService.IsAvailable()})
}

// Generate godoc
// @Summary      Generate a quiz with AI
// @Description  Ask the generation service for a quiz, map the response into the internal model and save it as a draft
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GenerateQuizRequest true "Generation form"
// @Success      201 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /api/v1/quizzes/generate [post]
func (h *AIGenerateHandler) Generate(c *gin.Context) {
	if !h.aiService.IsAvailable() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "AI generation is not configured. Set GEN_API_URL."})
		return
	}

	userID := c.GetString("user_id")

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	aiResp, err := h.aiService.Generate(services.GenerateInput{
		Topic:            req.Topic,
		Language:         req.Language,
		ProficiencyLevel: req.ProficiencyLevel,
		SlideCount:       req.SlideCount,
		ToneStyle:        req.ToneStyle,
		SourceURL:        req.SourceURL,
		Type:             req.Type,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "AI generation failed: " + err.Error()})
		return
	}

	quiz, err := services.MapAIResponseToQuiz(*aiResp)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not map generated quiz: " + err.Error()})
		return
	}

	if err := h.quizService.SaveMapped(userID, quiz); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save generated quiz: " + err.Error()})
		return
	}

	fullQuiz, err := h.quizService.GetQuizByID(quiz.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fullQuiz)
}
