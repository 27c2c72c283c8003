package types

// SkillCategory classifies an ontology entry.
type SkillCategory string

// Skill category constants
const (
	CategoryLanguage  SkillCategory = "language"
	CategoryFramework SkillCategory = "framework"
	CategoryTool      SkillCategory = "tool"
	CategoryConcept   SkillCategory = "concept"
)

// OntologyEntry is one canonical skill in the controlled vocabulary.
// Alias strings must be unique across the whole ontology; construction
// rejects catalogs where one alias maps to two canonical ids.
type OntologyEntry struct {
	ID            string        `json:"id"`
	CanonicalName string        `json:"canonical_name"`
	Category      SkillCategory `json:"category"`
	Aliases       []string      `json:"aliases,omitempty"`
}

// SkillRecord is the evidence-backed observation of one skill in one document.
// There is exactly one record per (document, skill) pair; a skill mentioned in
// several places keeps only its highest-confidence evidence.
type SkillRecord struct {
	SkillID       string        `json:"skill_id"`
	Name          string        `json:"name"`
	Category      SkillCategory `json:"category"`
	Confidence    float64       `json:"confidence"`
	Evidence      string        `json:"evidence"`
	SourceSection SectionLabel  `json:"source_section"`
}

// Importance classifies how strongly a job description demands a skill.
type Importance string

// Importance constants
const (
	ImportanceCritical Importance = "critical"
	ImportanceOptional Importance = "optional"
)

// JDRequirement is one skill demanded by a job description.
// Exactly one importance exists per (JD, skill) pair.
type JDRequirement struct {
	SkillID    string     `json:"skill_id"`
	Name       string     `json:"name"`
	Importance Importance `json:"importance"`
	Evidence   string     `json:"evidence"`
}

// Derivation records which strategy produced an experience figure.
type Derivation string

// Derivation constants
const (
	// DerivationExplicit means a stated total ("5+ years of experience") was parsed directly.
	DerivationExplicit Derivation = "explicit_statement"
	// DerivationDateRangeSum means employment date ranges were summed.
	DerivationDateRangeSum Derivation = "date_range_sum"
	// DerivationNone means no strategy succeeded and the value defaulted to zero.
	DerivationNone Derivation = "none"
)

// ExperienceFact is the derived total years of experience for one document.
// Years is always present (0.0 when nothing was found), never null, so
// downstream gap arithmetic stays total.
type ExperienceFact struct {
	Years      float64    `json:"years"`
	Derivation Derivation `json:"derivation"`
}
