package types

// SkillAnalysis lists which JD requirements the resume satisfied and which it
// missed. The missing lists, together with the experience gap, account for
// every point lost from the maximum score.
type SkillAnalysis struct {
	Matched         []string `json:"matched"`
	MissingCritical []string `json:"missing_critical"`
	MissingOptional []string `json:"missing_optional"`
}

// ExperienceAnalysis reports the years comparison between resume and JD.
type ExperienceAnalysis struct {
	RequiredYears float64 `json:"required_years"`
	ActualYears   float64 `json:"actual_years"`
	Gap           float64 `json:"gap"`
}

// AnalysisResult is the only shape the engine emits. Consumers treat unknown
// extra keys as a contract violation, so this struct is never extended ad hoc.
type AnalysisResult struct {
	OverallMatchScore  float64            `json:"overall_match_score"`
	SkillAnalysis      SkillAnalysis      `json:"skill_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	Strengths          []string           `json:"strengths"`
	Risks              []string           `json:"risks"`
	Recommendations    []string           `json:"recommendations"`
}

// AnalysisMetadata is the engine's self-assessment of how trustworthy this
// run's extraction was. Stored alongside the result, never inside it.
type AnalysisMetadata struct {
	ConfidenceLevel string   `json:"confidence_level"`
	Limitations     []string `json:"limitations"`
}

// Trace carries every intermediate fact behind an AnalysisResult so a reader
// can audit how each number was derived. It is advisory output; scoring never
// reads it back.
type Trace struct {
	ResumeSections     []Section       `json:"resume_sections"`
	JDSections         []Section       `json:"jd_sections"`
	ResumeSkills       []SkillRecord   `json:"resume_skills"`
	JDRequirements     []JDRequirement `json:"jd_requirements"`
	ResumeExperience   ExperienceFact  `json:"resume_experience"`
	RequiredExperience ExperienceFact  `json:"required_experience"`
}

// Explanation is the LLM-generated prose layer. It is derived from an
// AnalysisResult and may never alter any numeric field of it.
type Explanation struct {
	Summary                   string   `json:"summary"`
	StrengthsExplained        []string `json:"strengths_explained"`
	GapsExplained             []string `json:"gaps_explained"`
	ExperienceCommentary      string   `json:"experience_commentary"`
	ActionableRecommendations []string `json:"actionable_recommendations"`
}
