package service

import (
	"context"
	"fmt"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/rs/zerolog/log"
)

// QuestionAnswerer is the optional QA overlay. Implementations may be slow
// but must honour ctx.
type QuestionAnswerer interface {
	Available() bool
	Ask(ctx context.Context, question, reportText string) (string, error)
}

type candidate struct {
	strategy string
	record   dto.ReportRecord
	fill     int
}

// strategy is one step of the arbitration cascade. accept sees the candidates
// produced by the steps before it.
type strategy struct {
	name    string
	extract func(text string) dto.ReportRecord
	accept  func(c candidate, earlier []candidate) bool
}

// ReportExtractor runs the strict, smart and legacy extractors in priority
// order, keeps the first accepted candidate as the structural base and fills
// its gaps from the QA overlay.
type ReportExtractor struct {
	rules      utils.Rules
	strategies []strategy
	qa         QuestionAnswerer
}

// NewReportExtractor builds the cascade over rules. qa may be nil.
func NewReportExtractor(rules utils.Rules, qa QuestionAnswerer) *ReportExtractor {
	strict := utils.NewStrictExtractor(rules)
	smart := utils.NewSmartExtractor(rules)
	legacy := utils.NewLegacyExtractor(rules)

	return &ReportExtractor{
		rules: rules,
		qa:    qa,
		strategies: []strategy{
			{
				name:    strict.Name(),
				extract: strict.Extract,
				accept: func(c candidate, _ []candidate) bool {
					return c.fill >= rules.StrictThreshold
				},
			},
			{
				name:    smart.Name(),
				extract: smart.Extract,
				// districts alone can come from the deriver on unnumbered text,
				// so smart must also have placed at least one other section
				accept: func(c candidate, earlier []candidate) bool {
					return c.fill >= earlier[0].fill && beyondDistricts(c.record) > 0
				},
			},
			{
				name:    legacy.Name(),
				extract: legacy.Extract,
				accept:  func(candidate, []candidate) bool { return true },
			},
		},
	}
}

// Extract parses one report. It never panics and always returns a record
// with every field set.
func (e *ReportExtractor) Extract(ctx context.Context, text string) dto.ExtractionResult {
	base := e.structural(text)
	log.Debug().Str("strategy", base.strategy).Int("fill", base.fill).Msg("structural base chosen")

	return dto.ExtractionResult{
		Strategy:  base.strategy,
		FillCount: base.fill,
		Base:      base.record,
		Record:    e.overlay(ctx, text, base.record),
	}
}

// beyondDistricts counts filled body fields other than districts.
func beyondDistricts(rec dto.ReportRecord) int {
	n := rec.FillCount()
	if rec.Get(dto.FieldDistricts) != dto.NilValue {
		n--
	}
	return n
}

func (e *ReportExtractor) structural(text string) candidate {
	var seen []candidate
	for _, s := range e.strategies {
		c := e.run(s, text)
		if s.accept(c, seen) {
			return c
		}
		seen = append(seen, c)
	}
	// unreachable while the last strategy accepts everything
	return seen[len(seen)-1]
}

// run executes one strategy, turning a panic into an all-Nil candidate.
func (e *ReportExtractor) run(s strategy, text string) (c candidate) {
	c.strategy = s.name
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("strategy", s.name).Interface("panic", r).Msg("extractor panicked")
			c.record = dto.NewReportRecord()
			c.fill = 0
		}
	}()
	c.record = s.extract(text)
	c.fill = c.record.FillCount()
	return c
}

// overlay asks the QA model once per field and uses its answer only where
// the structural base is Nil.
func (e *ReportExtractor) overlay(ctx context.Context, text string, base dto.ReportRecord) dto.ReportRecord {
	merged := base
	if e.qa == nil || !e.qa.Available() {
		return merged
	}

	for _, f := range dto.Fields() {
		answer := e.ask(ctx, f, text)
		if base.Get(f) != dto.NilValue {
			continue
		}
		merged.Set(f, answer)
	}
	return merged
}

func (e *ReportExtractor) ask(ctx context.Context, f dto.Field, text string) (answer string) {
	question := e.rules.NameQuestion
	if f != dto.FieldUnitName {
		question = e.rules.Rule(f).Question
	}
	if question == "" {
		return dto.NilValue
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("field", f.String()).Err(fmt.Errorf("panic: %v", r)).Msg("qa overlay failed")
			answer = dto.NilValue
		}
	}()
	raw, err := e.qa.Ask(ctx, question, text)
	if err != nil {
		log.Warn().Str("field", f.String()).Err(err).Msg("qa overlay failed")
		return dto.NilValue
	}
	return utils.FieldValue(f, raw)
}
