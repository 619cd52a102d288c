package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/smart-correction/quizphere/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuizRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255" example:"My Quiz"`
	Description string `json:"description" binding:"max=1000"`
	Language    string `json:"language" example:"en"`
	Type        string `json:"type" example:"quiz"`
	TimeLimit   int    `json:"time_limit" example:"30"`
	Points      int    `json:"points" example:"100"`
}

type ReorderRequest struct {
	FromIndex int `json:"from_index" binding:"min=0"`
	ToIndex   int `json:"to_index" binding:"min=0"`
}

// ListQuizzes godoc
// @Summary      List all quizzes
// @Description  Get all quizzes for the authenticated author
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Quiz
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID := c.GetString("user_id")

	quizzes, err := h.quizService.ListQuizzes(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Description  Create a new draft quiz for the authenticated author
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizRequest true "Quiz settings"
// @Success      201 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(userID, services.QuizInput(req))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary      Get a quiz
// @Description  Get quiz with all questions, choices and images
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	quiz, err := h.quizService.GetQuizByID(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz godoc
// @Summary      Update quiz settings
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Param        request body QuizRequest true "Quiz settings"
// @Success      200 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(c.Param("id"), userID, services.QuizInput(req))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Description  Delete a quiz with all its questions and choices
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.quizService.DeleteQuiz(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}

// PublishQuiz godoc
// @Summary      Publish a quiz
// @Description  Validate every question and mark the quiz published
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/publish [post]
func (h *QuizHandler) PublishQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	quiz, err := h.quizService.PublishQuiz(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ReorderQuestions godoc
// @Summary      Reorder questions
// @Description  Move a question from one position to another
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Param        request body ReorderRequest true "Move"
// @Success      200 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/reorder [put]
func (h *QuizHandler) ReorderQuestions(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.quizService.ReorderQuestions(c.Param("id"), userID, req.FromIndex, req.ToIndex); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.GetQuizByID(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ExportQuiz godoc
// @Summary      Export a quiz
// @Description  Download the quiz in the editor save format
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} services.ExportQuiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/export [get]
func (h *QuizHandler) ExportQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	quiz, err := h.quizService.GetQuizByID(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	filename := strings.ReplaceAll(quiz.Title, " ", "_")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.json\"", filename))
	c.JSON(http.StatusOK, services.BuildExport(quiz))
}

// ImportQuiz godoc
// @Summary      Import a quiz
// @Description  Create a new draft quiz from exported data
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ExportQuiz true "Exported quiz"
// @Success      201 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/import [post]
func (h *QuizHandler) ImportQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var data services.ExportQuiz
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.ImportQuiz(userID, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quiz)
}
