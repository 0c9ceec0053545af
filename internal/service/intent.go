package service

import (
	"context"
	"regexp"
	"strings"

	"openkey/internal/model"
	"openkey/internal/utils"

	"github.com/sirupsen/logrus"
)

var monthLabelRe = regexp.MustCompile(`^20\d{2}-(0[1-9]|1[0-2])$`)

// IntentParser turns a natural-language query into a UserIntent, using the
// AI client when available and the rule-based parser otherwise.
type IntentParser struct {
	aiClient AIClient
	logger   *logrus.Logger
}

// NewIntentParser creates a new intent parser. aiClient may be nil.
func NewIntentParser(aiClient AIClient, logger *logrus.Logger) *IntentParser {
	return &IntentParser{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Parse never fails: when the model is unavailable or its answer cannot be
// used, the rule-based parser takes over.
func (p *IntentParser) Parse(ctx context.Context, prompt string) *model.UserIntent {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return model.NeutralIntent(text)
	}

	if p.aiClient == nil || !p.aiClient.IsEnabled() {
		p.logger.Debug("AI client disabled, using rule-based intent parser")
		return ParseRules(text)
	}

	extraction, err := p.aiClient.ExtractIntent(ctx, text)
	if err != nil {
		p.logger.WithError(err).Warn("AI intent extraction failed, using rule-based parser")
		return ParseRules(text)
	}

	return fromExtraction(text, extraction)
}

// fromExtraction validates a model answer. Zero or negative figures count as
// absent, unknown areas and amenities are dropped, and malformed handover
// months are ignored.
func fromExtraction(text string, ext *IntentExtraction) *model.UserIntent {
	intent := model.NeutralIntent(text)

	intent.BudgetMin = positive(ext.BudgetMin)
	intent.BudgetMax = positive(ext.BudgetMax)
	intent.SizeMin = positive(ext.SizeMin)
	intent.SizeMax = positive(ext.SizeMax)

	seen := make(map[string]bool)
	for _, a := range ext.PreferredAreas {
		area, ok := LookupArea(a.Name)
		if !ok || seen[area.Name] {
			continue
		}
		seen[area.Name] = true
		intent.PreferredAreas = append(intent.PreferredAreas, area)
	}

	if ext.PreferredHandoverMonth != nil {
		m := strings.TrimSpace(*ext.PreferredHandoverMonth)
		if monthLabelRe.MatchString(m) {
			intent.PreferredHandoverMonth = &m
		}
	}

	intent.AmenitiesRequested = utils.NormalizeAmenities(ext.AmenitiesRequested)

	kwSeen := make(map[string]bool)
	for _, k := range ext.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || kwSeen[k] {
			continue
		}
		kwSeen[k] = true
		intent.Keywords = append(intent.Keywords, k)
	}

	intent.InvestmentFocused = ext.InvestmentFocused
	return intent
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
