package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
	"github.com/couchcryptid/flood-risk-engine/internal/observability"
)

// AssessTransformer implements Transformer using the domain risk engine.
type AssessTransformer struct {
	engine  *domain.Engine
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates an AssessTransformer.
func NewTransformer(engine *domain.Engine, metrics *observability.Metrics, logger *slog.Logger) *AssessTransformer {
	return &AssessTransformer{
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

// Transform deserializes a feature bundle, runs the assessment, and
// serializes the result for the sink topic.
func (t *AssessTransformer) Transform(_ context.Context, raw domain.RawRequest) (domain.OutputEvent, error) {
	var bundle domain.FeatureBundle
	if err := json.Unmarshal(raw.Value, &bundle); err != nil {
		return domain.OutputEvent{}, fmt.Errorf("parse feature bundle: %w", err)
	}

	start := time.Now()
	assessment, err := t.engine.Assess(bundle)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	t.metrics.AssessmentsTotal.WithLabelValues(string(assessment.Level)).Inc()
	for src, f := range assessment.Factors {
		if f.Unavailable {
			t.metrics.SourcesDegraded.WithLabelValues(string(src)).Inc()
		}
	}

	return serializeAssessment(raw, assessment)
}

// serializeAssessment marshals an assessment into an output event. The sink
// key follows the request key so assessments partition with their requests;
// requests without a key fall back to the assessment ID.
func serializeAssessment(raw domain.RawRequest, a domain.RiskAssessment) (domain.OutputEvent, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize assessment: %w", err)
	}

	key := raw.Key
	if len(key) == 0 {
		key = []byte(a.ID)
	}

	headers := map[string]string{
		"risk_level":   string(a.Level),
		"generated_at": a.GeneratedAt.Format(time.RFC3339),
	}
	if id := raw.Headers["request_id"]; id != "" {
		headers["request_id"] = id
	}

	return domain.OutputEvent{Key: key, Value: data, Headers: headers}, nil
}
