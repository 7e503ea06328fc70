// Package analysis turns an assembled lab into validated structured
// results. Each analysis kind carries a static field catalog whose
// descriptions double as the model's behavioral instructions; the
// catalog also yields the JSON Schema sent to providers that support
// structured output.
package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/rhpds/showroom-tool/llm"
	"github.com/rhpds/showroom-tool/prompt"
)

// Kind selects one of the three analysis schemas.
type Kind string

const (
	KindSummary     Kind = "summary"
	KindReview      Kind = "review"
	KindDescription Kind = "description"
)

// Kinds lists the analysis kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindSummary, KindReview, KindDescription}
}

// summaryFields describes the Summary schema. Field order is the order
// blocks appear in the system prompt and must match the struct
// declaration in the showroom package.
var summaryFields = []prompt.Field{
	{
		Name: "products",
		Type: prompt.TypeStringList,
		Description: "FOCUS: Named products, platforms, and tools the lab actually exercises. " +
			"IGNORE: Generic categories like 'cloud' or 'automation' when a product name is available. " +
			"ACT LIKE: Solution architect compiling a bill of materials. " +
			"WRITE: Product names as the content spells them, one list entry each.",
	},
	{
		Name: "audience",
		Type: prompt.TypeStringList,
		Description: "FOCUS: Job roles that would benefit from completing this lab. " +
			"IGNORE: Products, tools, and technical detail. " +
			"ACT LIKE: Course catalog editor deciding who should enroll. " +
			"WRITE: Short role names such as 'Platform Engineers' or 'Solution Architects'.",
	},
	{
		Name: "learning_objectives",
		Type: prompt.TypeStringList,
		Description: "FOCUS: Concrete skills and knowledge a participant gains across the full module flow. " +
			"IGNORE: Marketing language and product praise. " +
			"ACT LIKE: Instructional designer writing measurable course outcomes. " +
			"WRITE: 4-6 complete sentences, each beginning with an action verb.",
	},
	{
		Name: "summary",
		Type: prompt.TypeString,
		Description: "FOCUS: What the lab covers, how it progresses module by module, and what participants accomplish. " +
			"IGNORE: Repository mechanics such as filenames and navigation structure. " +
			"ACT LIKE: Technical enablement lead briefing a field team. " +
			"WRITE: 5-6 sentences covering scope, structure, and outcomes.",
	},
}

// reviewFields describes the Review schema: five scored dimensions,
// each with mandatory feedback, plus an overall assessment.
var reviewFields = []prompt.Field{
	{
		Name: "completeness_score",
		Type: prompt.TypeScore,
		Description: "FOCUS: Whether the lab covers its stated objectives end to end, including setup, core exercises, and wrap-up. " +
			"IGNORE: Writing style and formatting. " +
			"ACT LIKE: Curriculum auditor checking for gaps. " +
			"WRITE: A single score from 0 to 10.",
	},
	{
		Name: "completeness_feedback",
		Type: prompt.TypeString,
		Description: "FOCUS: The specific gaps or strengths behind the completeness score. " +
			"IGNORE: Every other dimension. " +
			"ACT LIKE: Reviewer justifying a grade to the author. " +
			"WRITE: 2-3 sentences naming concrete modules or missing steps.",
	},
	{
		Name: "clarity_score",
		Type: prompt.TypeScore,
		Description: "FOCUS: How clearly instructions and explanations read for the stated audience. " +
			"IGNORE: Technical depth and coverage. " +
			"ACT LIKE: Technical editor scoring readability. " +
			"WRITE: A single score from 0 to 10.",
	},
	{
		Name: "clarity_feedback",
		Type: prompt.TypeString,
		Description: "FOCUS: Passages that are notably clear or confusing and why. " +
			"IGNORE: Every other dimension. " +
			"ACT LIKE: Technical editor handing back margin notes. " +
			"WRITE: 2-3 sentences citing specific modules or sections.",
	},
	{
		Name: "technical_depth_score",
		Type: prompt.TypeScore,
		Description: "FOCUS: Whether the content goes beyond click-through steps into how and why the technology works. " +
			"IGNORE: Length and polish. " +
			"ACT LIKE: Senior engineer assessing rigor. " +
			"WRITE: A single score from 0 to 10.",
	},
	{
		Name: "technical_depth_feedback",
		Type: prompt.TypeString,
		Description: "FOCUS: Where the lab explains underlying concepts well and where it stays superficial. " +
			"IGNORE: Every other dimension. " +
			"ACT LIKE: Senior engineer reviewing a junior's course material. " +
			"WRITE: 2-3 sentences with concrete examples from the content.",
	},
	{
		Name: "usefulness_score",
		Type: prompt.TypeScore,
		Description: "FOCUS: How directly the skills practiced transfer to real production work. " +
			"IGNORE: Entertainment value and novelty. " +
			"ACT LIKE: Practitioner judging relevance to the day job. " +
			"WRITE: A single score from 0 to 10.",
	},
	{
		Name: "usefulness_feedback",
		Type: prompt.TypeString,
		Description: "FOCUS: Which exercises map to real tasks and which feel artificial. " +
			"IGNORE: Every other dimension. " +
			"ACT LIKE: Practitioner reporting back to a training lead. " +
			"WRITE: 2-3 sentences grounded in the exercises themselves.",
	},
	{
		Name: "business_value_score",
		Type: prompt.TypeScore,
		Description: "FOCUS: How well the lab connects the technology to business outcomes a seller could present. " +
			"IGNORE: Implementation detail. " +
			"ACT LIKE: Account executive preparing a customer conversation. " +
			"WRITE: A single score from 0 to 10.",
	},
	{
		Name: "business_value_feedback",
		Type: prompt.TypeString,
		Description: "FOCUS: The business narrative the lab supports or fails to support. " +
			"IGNORE: Every other dimension. " +
			"ACT LIKE: Sales enablement reviewer. " +
			"WRITE: 2-3 sentences on the value story and what would strengthen it.",
	},
	{
		Name: "overall_review",
		Type: prompt.TypeString,
		Description: "FOCUS: An overall judgement across all five dimensions with the most important improvements first. " +
			"IGNORE: Restating every individual score. " +
			"ACT LIKE: Lead reviewer writing the closing assessment. " +
			"WRITE: A short paragraph summarizing strengths, weaknesses, and priority fixes.",
	},
}

// descriptionFields describes the Description schema, which produces
// catalog copy rather than analysis.
var descriptionFields = []prompt.Field{
	{
		Name: "headline",
		Type: prompt.TypeString,
		Description: "FOCUS: The single most compelling capability the lab demonstrates. " +
			"IGNORE: Module structure, prerequisites, and caveats. " +
			"ACT LIKE: Catalog copywriter competing for attention. " +
			"WRITE: One headline under fifteen words with no trailing period.",
	},
	{
		Name: "products",
		Type: prompt.TypeStringList,
		Description: "FOCUS: The products a catalog visitor would filter by to find this lab. " +
			"IGNORE: Incidental tooling mentioned once. " +
			"ACT LIKE: Catalog taxonomist assigning product tags. " +
			"WRITE: Official product names, one list entry each.",
	},
	{
		Name: "audience",
		Type: prompt.TypeStringList,
		Description: "FOCUS: Who should click on this catalog entry and why it matters to them. " +
			"IGNORE: Deep technical content. " +
			"ACT LIKE: Catalog copywriter addressing each reader directly. " +
			"WRITE: One bullet per role, naming the role and its payoff.",
	},
	{
		Name: "lab_bullets",
		Type: prompt.TypeStringList,
		Description: "FOCUS: The concrete things a participant does and takes away. " +
			"IGNORE: Abstract benefits that could describe any lab. " +
			"ACT LIKE: Catalog copywriter selling specifics. " +
			"WRITE: 3-5 bullets, each a complete sentence starting with a verb.",
	},
}

// Fields returns the ordered field catalog for a kind. Every field
// must carry a description; a catalog with a blank description fails
// whole, with no partial extraction.
func Fields(kind Kind) ([]prompt.Field, error) {
	var fields []prompt.Field
	switch kind {
	case KindSummary:
		fields = summaryFields
	case KindReview:
		fields = reviewFields
	case KindDescription:
		fields = descriptionFields
	default:
		return nil, fmt.Errorf("unknown analysis kind %q", kind)
	}

	if err := requireDescriptions(kind, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// requireDescriptions rejects any catalog entry without a behavioral
// description, since the description is the only steering mechanism.
func requireDescriptions(kind Kind, fields []prompt.Field) error {
	for _, f := range fields {
		if f.Description == "" {
			return fmt.Errorf("%w: %s.%s", ErrSchemaFieldMissingDescription, kind, f.Name)
		}
	}
	return nil
}

// VerifyCatalogs checks every kind's catalog at startup so a missing
// description aborts the process instead of surfacing mid-request.
func VerifyCatalogs() error {
	for _, kind := range Kinds() {
		if _, err := Fields(kind); err != nil {
			return err
		}
	}
	return nil
}

// JSONSchema builds the structured-output schema for a kind from its
// field catalog. Score fields carry the closed interval bounds so
// capable providers enforce them server-side; validation here still
// rejects out-of-range values regardless.
func JSONSchema(kind Kind) (*llm.ResponseSchema, error) {
	fields, err := Fields(kind)
	if err != nil {
		return nil, err
	}

	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		properties[f.Name] = schemaForType(f.Type)
		required = append(required, f.Name)
	}

	doc, err := json.Marshal(map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
	}

	return &llm.ResponseSchema{
		Name:   "lab_" + string(kind),
		Schema: doc,
	}, nil
}

func schemaForType(t prompt.FieldType) map[string]any {
	switch t {
	case prompt.TypeStringList:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case prompt.TypeScore:
		return map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 10,
		}
	default:
		return map[string]any{"type": "string"}
	}
}
