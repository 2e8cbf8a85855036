package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AvaniDange/AutoDashAI/internal/agent"
	"github.com/AvaniDange/AutoDashAI/internal/charts"
)

// Models wrap JSON in prose or code fences; grab the outermost object.
var jsonPattern = regexp.MustCompile(`\{[\s\S]*\}`)

const resolverSystemPrompt = `You classify dashboard requests. Reply with ONLY a JSON object:
{"intent": "create"|"update"|"remove"|"unknown", "chart_type": "bar"|"line"|"pie"|"area"|"", "columns": ["..."]}
"columns" may only contain names from the provided column list. No other text.`

// Resolver asks the model to classify a message. Every failure mode —
// timeout, bad status, unparseable answer, hallucinated columns — is an
// error so the caller can fall back to keyword rules.
type Resolver struct {
	client  *Client
	timeout time.Duration
}

func NewResolver(client *Client, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Resolver{client: client, timeout: timeout}
}

func (r *Resolver) Resolve(ctx context.Context, message string, columns []string) (agent.Intent, error) {
	if !r.client.Enabled() {
		return agent.Intent{}, fmt.Errorf("llm resolver disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user := fmt.Sprintf("Columns: %s\nMessage: %s", strings.Join(columns, ", "), message)
	raw, err := r.client.Complete(ctx, resolverSystemPrompt, user)
	if err != nil {
		return agent.Intent{}, err
	}

	blob := jsonPattern.FindString(raw)
	if blob == "" {
		return agent.Intent{}, fmt.Errorf("no JSON object in model reply: %q", raw)
	}

	var parsed struct {
		Intent    string   `json:"intent"`
		ChartType string   `json:"chart_type"`
		Columns   []string `json:"columns"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return agent.Intent{}, fmt.Errorf("failed to parse model reply: %w", err)
	}

	kind, err := parseKind(parsed.Intent)
	if err != nil {
		return agent.Intent{}, err
	}
	if parsed.ChartType != "" && !charts.KnownType(parsed.ChartType) {
		return agent.Intent{}, fmt.Errorf("model named unknown chart type %q", parsed.ChartType)
	}
	valid := map[string]bool{}
	for _, c := range columns {
		valid[c] = true
	}
	for _, c := range parsed.Columns {
		if !valid[c] {
			return agent.Intent{}, fmt.Errorf("model named unknown column %q", c)
		}
	}

	return agent.Intent{
		Kind:      kind,
		ChartType: parsed.ChartType,
		Columns:   parsed.Columns,
	}, nil
}

func parseKind(s string) (agent.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return agent.KindCreate, nil
	case "update":
		return agent.KindUpdate, nil
	case "remove":
		return agent.KindRemove, nil
	case "unknown", "":
		return agent.KindUnknown, nil
	}
	return agent.KindUnknown, fmt.Errorf("model returned unknown intent %q", s)
}
