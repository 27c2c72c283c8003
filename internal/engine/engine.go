// Package engine orchestrates the deterministic analysis pipeline: normalize,
// segment, extract, score, assemble. An Engine is a pure function of
// (resume text, JD text, ontology snapshot, clock); running it twice on
// identical inputs yields a bit-identical result.
package engine

import (
	"time"

	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/match"
	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/segment"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Version is recorded with every stored result so historical scores can be
// traced to the rules that produced them.
const Version = "1.0.0"

// Engine holds the read-only ontology snapshot and the clock used to resolve
// "present" in date ranges. It carries no mutable state, so one Engine may
// serve concurrent analyses without locking.
type Engine struct {
	ont *ontology.Ontology
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock fixes the engine's notion of the current time. Tests and
// reproducibility-sensitive callers use this; the default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over an ontology snapshot. Passing nil uses the
// embedded default catalog.
func New(ont *ontology.Ontology, opts ...Option) *Engine {
	e := &Engine{
		ont: ont,
		now: time.Now,
	}
	if e.ont == nil {
		e.ont = ontology.Default()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ontology returns the snapshot this engine analyzes against.
func (e *Engine) Ontology() *ontology.Ontology {
	return e.ont
}

// Analyze runs the full pipeline for one (resume, JD) pair. It never fails:
// malformed or empty documents still produce a complete, well-formed result
// with zero matches and zero experience. The returned trace carries every
// intermediate fact for audit.
func (e *Engine) Analyze(resumeText, jdText string) (*types.AnalysisResult, *types.Trace) {
	now := e.now()

	resumeSections := segment.Lines(ingestion.NormalizeLines(resumeText))
	jdSections := segment.Lines(ingestion.NormalizeLines(jdText))

	resumeSkills := skills.Extract(resumeSections, e.ont)
	requirements := skills.ExtractRequirements(jdSections, e.ont)

	actual := experience.Extract(resumeSections, now)
	required := experience.Extract(jdSections, now)

	gap := match.EvaluateSkillGap(resumeSkills, requirements)
	skillScore := match.SkillScore(gap)
	experienceScore := match.ExperienceScore(actual.Years - required.Years)
	overall := match.OverallScore(skillScore, experienceScore)

	result := report.Assemble(gap, actual, required, overall)
	trace := &types.Trace{
		ResumeSections:     resumeSections,
		JDSections:         jdSections,
		ResumeSkills:       resumeSkills,
		JDRequirements:     requirements,
		ResumeExperience:   actual,
		RequiredExperience: required,
	}

	return result, trace
}
