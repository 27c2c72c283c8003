// Package types provides type definitions for structured data used throughout the resume-analyzer system.
package types

// DocumentKind identifies which side of the comparison a raw document belongs to.
type DocumentKind string

// Document kind constants
const (
	// DocumentResume is a candidate resume
	DocumentResume DocumentKind = "resume"
	// DocumentJobDescription is a job description
	DocumentJobDescription DocumentKind = "job_description"
)

// RawDocument is the immutable input to the analysis pipeline.
// It is created once per upload/paste and never mutated.
type RawDocument struct {
	Text string       `json:"text"`
	Kind DocumentKind `json:"kind"`
}

// SectionLabel identifies the logical section of a document a line belongs to.
type SectionLabel string

// Section label constants
const (
	SectionSummary    SectionLabel = "summary"
	SectionExperience SectionLabel = "experience"
	SectionSkills     SectionLabel = "skills"
	SectionEducation  SectionLabel = "education"
	SectionUnknown    SectionLabel = "unknown"
)

// Section is a contiguous span of normalized lines assigned to one label.
// StartLine is inclusive and EndLine exclusive, indexing into the normalized
// line sequence. A section opened by a header line includes that line in its
// span but excludes it from Text, so spans always cover the whole document
// with no gaps or overlaps.
type Section struct {
	Label     SectionLabel `json:"label"`
	StartLine int          `json:"start_line"`
	EndLine   int          `json:"end_line"`
	Text      string       `json:"text"`
}
