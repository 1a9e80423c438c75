// Package extract turns unstructured statement text into candidate rows via
// an external AI model. It is a host-side collaborator: the pipeline never
// calls it, it only consumes the rows it produces. Retries live here, not in
// the pipeline.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/himynameismarvin/budget-bop/internal/common"
	"github.com/himynameismarvin/budget-bop/internal/parser"
)

// DefaultModelName is the Gemini model used for extraction.
const DefaultModelName = "gemini-2.0-flash"

// Extractor produces candidate rows from free text.
type Extractor interface {
	Extract(ctx context.Context, text string) (*parser.Table, error)
}

// GeminiExtractor implements Extractor against the Gemini API. Credentials
// come from the environment (GEMINI_API_KEY or application default
// credentials), matching the genai client's own resolution.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates an extractor. An empty model name selects
// DefaultModelName.
func NewGeminiExtractor(ctx context.Context, model string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

const extractionPrompt = `You are a bank statement parser.

Task:
- Extract ALL transactions from the text below.
- Output STRICT JSON only (no comments, no trailing commas, no extra text).
- Output a JSON array of objects.

Each object must have these fields:
- "date": string, ISO format "YYYY-MM-DD" when determinable, else the original text
- "description": string, the transaction description exactly as written
- "amount": number (positive for money in, negative for money out)

Return ONLY valid raw JSON.
Do NOT wrap the response in code fences.
Output must begin with "[" and end with "]".

Text:
`

type candidateRow struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Extract sends the text to the model and converts its JSON reply into the
// same headers+rows shape the tabular parser produces, so the rest of the
// pipeline cannot tell the two sources apart.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) (*parser.Table, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: extractionPrompt + text}},
		},
	}

	var raw string
	err := common.WithRetry(ctx, func() error {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			return err
		}
		raw = resp.Text()
		if raw == "" {
			return fmt.Errorf("%w: empty model response", common.ErrExtractionFailed)
		}
		return nil
	}, common.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return nil, err
	}

	var rows []candidateRow
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &rows); err != nil {
		return nil, fmt.Errorf("%w: invalid model JSON: %v", common.ErrExtractionFailed, err)
	}

	return rowsToTable(rows), nil
}

func rowsToTable(rows []candidateRow) *parser.Table {
	table := &parser.Table{Headers: []string{"Date", "Description", "Amount"}}
	for _, row := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"Date":        row.Date,
			"Description": row.Description,
			"Amount":      strconv.FormatFloat(row.Amount, 'f', 2, 64),
		})
	}
	return table
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
