package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/prompt"
)

// apiRequest は POST /api/gemini の本文です。
type apiRequest struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config"`
}

type imageConfig struct {
	Prompt       string `json:"prompt"`
	Style        string `json:"style"`
	AspectRatio  string `json:"aspectRatio"`
	ReferenceURL string `json:"referenceUrl"`
}

type textConfig struct {
	Text              string   `json:"text"`
	Instruction       string   `json:"instruction"`
	Instructions      []string `json:"instructions"`
	CustomInstruction string   `json:"customInstruction"`
}

type searchConfig struct {
	Query string `json:"query"`
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type imageResponse struct {
	Result string `json:"result"`
}

type textResponse struct {
	Result string `json:"result"`
	Empty  bool   `json:"empty"`
}

type pointJSON struct {
	Text   string `json:"text"`
	Bullet bool   `json:"bullet"`
}

type findingJSON struct {
	Title  string      `json:"title"`
	Points []pointJSON `json:"points"`
	Source string      `json:"source"`
}

type searchResponse struct {
	Text     string          `json:"text"`
	Findings []findingJSON   `json:"findings"`
	Sources  []domain.Source `json:"sources"`
	Empty    bool            `json:"empty"`
}

// handleGemini は action に応じたワークフローを実行します。
func (s *Server) handleGemini(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.credentials.Validate(); err != nil {
		slog.ErrorContext(ctx, "API キーが設定されていません")
		writeError(c, http.StatusInternalServerError, err)
		return
	}

	var body apiRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, domain.NewError(domain.KindConfiguration, "Cuerpo de la solicitud inválido.", err))
		return
	}
	kind, err := domain.ParseWorkflowKind(body.Action)
	if err != nil {
		writeError(c, http.StatusBadRequest, domain.NewError(domain.KindConfiguration, "Acción no válida.", err))
		return
	}
	req, err := decodeRequest(kind, body.Config)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	res, err := s.runner.Run(ctx, req)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = domain.KindOf(err).String()
	}
	s.metrics.Observe(kind.String(), outcome, time.Since(start))
	if err != nil {
		writeError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, renderResult(res))
}

// decodeRequest は config を workflow に対応するリクエストに変換します。
func decodeRequest(kind domain.WorkflowKind, raw json.RawMessage) (domain.Request, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	invalid := func(err error) error {
		return domain.NewError(domain.KindConfiguration, "Configuración inválida.", err)
	}

	switch kind {
	case domain.ImageGeneration:
		var cfg imageConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, invalid(err)
		}
		style, err := domain.ParseStyle(cfg.Style)
		if err != nil {
			return nil, err
		}
		aspect, err := domain.ParseAspectRatio(cfg.AspectRatio)
		if err != nil {
			return nil, err
		}
		return domain.ImageRequest{Prompt: cfg.Prompt, Style: style, AspectRatio: aspect, ReferenceURL: cfg.ReferenceURL}, nil
	case domain.TextEditing:
		var cfg textConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, invalid(err)
		}
		instruction := cfg.Instruction
		if instruction == "" {
			instruction = prompt.JoinInstructions(cfg.Instructions, cfg.CustomInstruction)
		}
		return domain.TextEditRequest{Text: cfg.Text, Instruction: instruction}, nil
	case domain.ResearchGrounding:
		var cfg searchConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, invalid(err)
		}
		return domain.ResearchRequest{Query: cfg.Query}, nil
	default:
		return nil, domain.ConfigurationError("Acción no válida.")
	}
}

func renderResult(res domain.Result) any {
	switch r := res.(type) {
	case *domain.ImageResult:
		return imageResponse{Result: r.DataURI()}
	case *domain.TextResult:
		return textResponse{Result: r.Text, Empty: r.Empty}
	case *domain.ResearchResult:
		findings := make([]findingJSON, 0, len(r.Findings))
		for _, f := range r.Findings {
			points := make([]pointJSON, len(f.Points))
			for i, p := range f.Points {
				points[i] = pointJSON{Text: p, Bullet: f.IsBullet(i)}
			}
			findings = append(findings, findingJSON{Title: f.Title, Points: points, Source: f.SourceLine})
		}
		sources := r.Sources
		if sources == nil {
			sources = []domain.Source{}
		}
		return searchResponse{Text: r.RawText, Findings: findings, Sources: sources, Empty: r.Empty}
	default:
		return gin.H{}
	}
}

// statusFor はエラーの分類を HTTP ステータスに対応付けます。
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindConfiguration:
		return http.StatusBadRequest
	case domain.KindSafetyBlocked:
		return http.StatusUnprocessableEntity
	case domain.KindEmptyResult, domain.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, err error) {
	body := errorBody{Error: err.Error(), Kind: domain.KindOf(err).String()}
	var oe *domain.OrchestrationError
	if errors.As(err, &oe) {
		body.Error = oe.Message
	}
	c.AbortWithStatusJSON(status, body)
}
