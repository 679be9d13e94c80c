package analyzer

import (
	"context"
	"errors"
	"strings"

	"webintel/webintel/services/llm"
	"webintel/webintel/types"
	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/jsonutils"
	"webintel/webintel/utils/logging"
	utypes "webintel/webintel/utils/types"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	maxExtractionTemperature = 0.2
	maxDirectTemperature     = 2.0
)

// Analyzer turns extracted page content and search results into structured
// answers through a language model.
type Analyzer struct {
	client      llm.Client
	model       string
	temperature float64
	logger      *logging.Loggers
}

// New clamps temperature to [0, 0.2]. An empty model picks the provider default.
func New(client llm.Client, model string, temperature float64, logger *logging.Loggers) *Analyzer {
	if model == "" {
		model = llm.DefaultModel(client.Provider())
	}
	return &Analyzer{
		client:      client,
		model:       model,
		temperature: clamp(temperature, 0, maxExtractionTemperature),
		logger:      logger,
	}
}

// Analyze never fails on a bad model response: it logs the raw text and
// returns the degraded record. Only transport errors are returned.
func (a *Analyzer) Analyze(ctx context.Context, content *utypes.ExtractedContent, url string) (*types.BusinessDetails, error) {
	defer a.logger.LogDuration(ctx, "Analyzer.Analyze")()

	raw, err := a.complete(ctx, analysisPrompt(content, url), a.temperature)
	if err != nil {
		return nil, eris.Wrapf(err, "analyze %s", url)
	}

	details, err := decodeDetails(raw, url)
	if err != nil {
		a.logger.Error.Error("error processing model response",
			zap.Error(err), zap.String("url", url), zap.String("response", raw), logging.TraceField(ctx))
		return types.DefaultBusinessDetails(url), nil
	}

	a.logger.App.Info("website analyzed",
		zap.String("url", url), zap.String("company", details.CompanyName), logging.TraceField(ctx))
	return details, nil
}

// decodeDetails parses, normalizes and validates the model output. Failures
// carry errs.ErrModelResponse.
func decodeDetails(raw, url string) (*types.BusinessDetails, error) {
	var details types.BusinessDetails
	if err := jsonutils.Decode(raw, &details); err != nil {
		return nil, errs.Wrap(errs.ErrModelResponse, err, "decode business details")
	}
	details.Normalize(url)
	if err := details.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrModelResponse, err, "invalid business details")
	}
	return &details, nil
}

type modelAnswer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// AnswerFromSearch synthesizes an answer from search snippets. An
// unparseable response is returned verbatim with zero confidence.
func (a *Analyzer) AnswerFromSearch(ctx context.Context, question string, company *types.BusinessDetails, results *utypes.SearchResponse) (*types.QuestionAnswer, error) {
	defer a.logger.LogDuration(ctx, "Analyzer.AnswerFromSearch")()

	var hits []utypes.SearchResult
	if results != nil {
		hits = results.Results
	}
	raw, err := a.complete(ctx, searchAnswerPrompt(question, company, hits), a.temperature)
	if err != nil {
		return nil, eris.Wrap(err, "answer from search")
	}

	ans := a.parseAnswer(ctx, raw)
	return &types.QuestionAnswer{
		Answer:     ans.Answer,
		Confidence: ans.Confidence,
		Source:     types.SourceWebSearch,
	}, nil
}

// DirectQuestion asks the model without any company context. A nil
// temperature uses the analyzer default.
func (a *Analyzer) DirectQuestion(ctx context.Context, question string, temperature *float64) (*utypes.DirectAnswer, error) {
	defer a.logger.LogDuration(ctx, "Analyzer.DirectQuestion")()

	t := a.temperature
	if temperature != nil {
		t = clamp(*temperature, 0, maxDirectTemperature)
	}
	raw, err := a.complete(ctx, directQuestionPrompt(question), t)
	if err != nil {
		return nil, eris.Wrap(err, "direct question")
	}

	ans := a.parseAnswer(ctx, raw)
	return &utypes.DirectAnswer{Answer: ans.Answer, Confidence: ans.Confidence}, nil
}

func (a *Analyzer) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return a.client.Run(ctx, llm.ChatRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: &temperature,
		JSONMode:    true,
	})
}

func (a *Analyzer) parseAnswer(ctx context.Context, raw string) modelAnswer {
	var ans modelAnswer
	err := jsonutils.Decode(raw, &ans)
	if err == nil && strings.TrimSpace(ans.Answer) == "" {
		err = errors.New("empty answer field")
	}
	if err != nil {
		a.logger.Error.Error("unparseable answer response",
			zap.Error(errs.Wrap(errs.ErrModelResponse, err, "decode answer")), zap.String("response", raw), logging.TraceField(ctx))
		return modelAnswer{Answer: strings.TrimSpace(raw)}
	}
	ans.Confidence = types.ClampConfidence(ans.Confidence)
	return ans
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
