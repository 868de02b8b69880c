package query

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openai "github.com/sashabaranov/go-openai"

	"github.com/motorline/vehicle-finder/pkg/types"
)

var (
	noParses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_query_parses_total",
		Help: "The total number of free-text parse calls",
	})
	noParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finder_query_parse_failures_total",
		Help: "The total number of failed or degraded free-text parses",
	})
)

// Parser turns a free-text query into a best-effort partial criteria. Any
// subset of fields may come back, possibly none. Implementations degrade to
// an empty patch on failure or low confidence; they never make the caller
// handle a parse error as anything but "no additional filters".
type Parser interface {
	Parse(ctx context.Context, query string) types.CriteriaPatch
}

const parserSystemPrompt = `You extract vehicle search filters from a user query.
Respond with only a JSON object, no prose. Allowed keys: category, make, model,
priceMin, priceMax, mileageMax, fuelType, year, color, state, features (array
of strings). Omit every key you are not confident about. Respond with {} when
nothing can be extracted.`

// OpenAIParser asks a chat model for a structured filter extraction.
type OpenAIParser struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIParser() *OpenAIParser {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model, ok := os.LookupEnv("OPENAI_MODEL")
	if !ok {
		model = openai.GPT4oMini
	}
	return &OpenAIParser{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: 5 * time.Second,
	}
}

func (p *OpenAIParser) Parse(ctx context.Context, query string) types.CriteriaPatch {
	noParses.Inc()
	empty := types.CriteriaPatch{}
	query = strings.TrimSpace(query)
	if query == "" {
		return empty
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parserSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		noParseFailures.Inc()
		log.Printf("query parse failed, continuing without filters: %v", err)
		return empty
	}
	if len(resp.Choices) == 0 {
		noParseFailures.Inc()
		return empty
	}
	var patch types.CriteriaPatch
	if err := sonic.Unmarshal([]byte(resp.Choices[0].Message.Content), &patch); err != nil {
		noParseFailures.Inc()
		log.Printf("query parse returned malformed filters: %v", err)
		return empty
	}
	return patch
}

// NoopParser never extracts anything, used when no parser backend is
// configured.
type NoopParser struct{}

func (NoopParser) Parse(_ context.Context, _ string) types.CriteriaPatch {
	return types.CriteriaPatch{}
}
