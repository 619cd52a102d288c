package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smart-correction/quizphere/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	quizService *services.QuizService
	uploadDir   string
}

func NewQuestionHandler(quizService *services.QuizService, uploadDir string) *QuestionHandler {
	return &QuestionHandler{quizService: quizService, uploadDir: uploadDir}
}

type QuestionRequest struct {
	Text        string                 `json:"text" binding:"required"`
	Explanation string                 `json:"explanation"`
	ImageURLs   []string               `json:"image_urls"`
	Choices     []services.ChoiceInput `json:"choices" binding:"required"`
}

// CreateQuestion godoc
// @Summary      Add a question to a quiz
// @Description  The question takes the quiz's type; choices must match that type's shape
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.quizService.CreateQuestion(c.Param("id"), userID, services.QuestionInput(req))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.quizService.UpdateQuestion(c.Param("id"), userID, services.QuestionInput(req))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.quizService.DeleteQuestion(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// AddQuestionImage godoc
// @Summary      Attach an image to a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/images [post]
func (h *QuestionHandler) AddQuestionImage(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	img, err := h.quizService.AddQuestionImage(c.Param("id"), userID, req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// DeleteQuestionImage godoc
// @Summary      Remove an image from a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Image ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/images/{id} [delete]
func (h *QuestionHandler) DeleteQuestionImage(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.quizService.DeleteQuestionImage(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "image deleted"})
}

// UploadMedia godoc
// @Summary      Upload a media file
// @Tags         questions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Media file"
// @Success      200 {object} map[string]string
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/upload [post]
func (h *QuestionHandler) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	imageExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	audioExts := map[string]bool{".mp3": true, ".ogg": true, ".wav": true, ".m4a": true}

	if file.Size > 20<<20 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file too large (max 20MB)"})
		return
	}

	mediaType := ""
	if imageExts[ext] {
		mediaType = "image"
	} else if audioExts[ext] {
		mediaType = "audio"
	} else {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file format"})
		return
	}

	filename := fmt.Sprintf("%d_%d%s", time.Now().UnixNano(), rand.Intn(100000), ext)
	dst := filepath.Join(h.uploadDir, filename)

	os.MkdirAll(h.uploadDir, 0755)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filename, "type": mediaType})
}
