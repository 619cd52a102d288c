package handlers

import (
	"log"
	"net/http"

	"github.com/smart-correction/quizphere/internal/services"
	"github.com/smart-correction/quizphere/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RunHandler struct {
	runService *services.RunService
	hub        *ws.Hub
}

func NewRunHandler(runService *services.RunService, hub *ws.Hub) *RunHandler {
	return &RunHandler{runService: runService, hub: hub}
}

type StartRunRequest struct {
	QuizID    string `json:"quiz_id" binding:"required"`
	TimeLimit *int   `json:"time_limit,omitempty"`
	Points    *int   `json:"points,omitempty"`
}

// StartRun godoc
// @Summary      Start a preview run
// @Description  Begin a timed single-user run through a quiz
// @Tags         runs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartRunRequest true "Run settings"
// @Success      201 {object} services.RunState
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/runs [post]
func (h *RunHandler) StartRun(c *gin.Context) {
	userID := c.GetString("user_id")

	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.runService.StartRun(req.QuizID, userID, services.RunOptions{
		TimeLimit: req.TimeLimit,
		Points:    req.Points,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

// SelectAnswer godoc
// @Summary      Select an answer for the current question
// @Description  Replaces any earlier selection for the current question
// @Tags         runs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Run ID"
// @Param        request body services.RunAnswer true "Answer"
// @Success      200 {object} services.RunState
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/runs/{id}/answer [post]
func (h *RunHandler) SelectAnswer(c *gin.Context) {
	var ans services.RunAnswer
	if err := c.ShouldBindJSON(&ans); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.runService.Select(c.Param("id"), ans)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// NextQuestion godoc
// @Summary      Advance the run
// @Description  Record the selected answer and move to the next question or the result
// @Tags         runs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Run ID"
// @Success      200 {object} services.RunState
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/runs/{id}/next [post]
func (h *RunHandler) NextQuestion(c *gin.Context) {
	state, err := h.runService.Advance(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetRunState godoc
// @Summary      Get the current run state
// @Tags         runs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Run ID"
// @Success      200 {object} services.RunState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/runs/{id} [get]
func (h *RunHandler) GetRunState(c *gin.Context) {
	state, err := h.runService.State(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ListResults godoc
// @Summary      List run results for a quiz
// @Tags         runs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {array} RunResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/results [get]
func (h *RunHandler) ListResults(c *gin.Context) {
	userID := c.GetString("user_id")

	results, err := h.runService.ListResults(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleRunWebSocket godoc
// @Summary      WebSocket connection for run updates
// @Description  Connect via WebSocket to receive countdown ticks and state changes for a run
// @Tags         websocket
// @Param        id path string true "Run ID"
// @Router       /ws/run/{id} [get]
func (h *RunHandler) HandleRunWebSocket(c *gin.Context) {
	runID := c.Param("id")
	if _, err := h.runService.State(runID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(runID, conn)
	defer h.hub.RemoveConnection(runID, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
