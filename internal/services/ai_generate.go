package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AIQuizResponse is the document returned by the external generation
// service. It is mapped into a models.Quiz once and then discarded.
type AIQuizResponse struct {
	Status string     `json:"status"`
	Data   AIQuizData `json:"data"`
	Error  *string    `json:"error"`
}

type AIQuizData struct {
	QuizID    string       `json:"quiz_id"`
	Questions []AIQuestion `json:"questions"`
	Metadata  AIMetadata   `json:"metadata"`
}

type AIMetadata struct {
	Type        string `json:"type"`
	GeneratedAt string `json:"generated_at"`
	Source      string `json:"source"`
	Language    string `json:"language"`
}

type AIQuestion struct {
	QuestionText string   `json:"question_text"`
	ImageURL     []string `json:"image_url"`
	Answer       AIAnswer `json:"answer"`
	Explanation  string   `json:"explanation"`
}

// AIAnswer carries a variant correct_answer: an index for multiple choice,
// a 0/1 code for boolean, an order array for puzzle, a [min, value, max]
// tuple for slider, accepted strings for free response. Decoded per type.
type AIAnswer struct {
	Type          string          `json:"type"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	Options       []string        `json:"options"`
}

// GenerateInput mirrors the authoring form sent to the generation service.
type GenerateInput struct {
	Topic            string `json:"topic"`
	Language         string `json:"language"`
	ProficiencyLevel string `json:"proficiency_level"`
	SlideCount       int    `json:"slide_count"`
	ToneStyle        string `json:"tone_style"`
	SourceURL        string `json:"source_url,omitempty"`
	Type             string `json:"type"`
}

type AIGenerateService struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewAIGenerateService(apiURL, apiKey string) *AIGenerateService {
	return &AIGenerateService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

func (s *AIGenerateService) IsAvailable() bool {
	return s.apiURL != ""
}

func (s *AIGenerateService) Generate(input GenerateInput) (*AIQuizResponse, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("AI generation is not configured")
	}

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL+"/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, string(body))
	}

	var aiResp AIQuizResponse
	if err := json.Unmarshal(body, &aiResp); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}

	if aiResp.Error != nil && *aiResp.Error != "" {
		return nil, fmt.Errorf("generation service error: %s", *aiResp.Error)
	}

	return &aiResp, nil
}
