package model

import "slices"

// RealizationMatrix is the six-section planning framework attached to a project.
type RealizationMatrix struct {
	Realization RealizationSection `json:"realization"`
	Vision      VisionSection      `json:"vision"`
	Direction   DirectionSection   `json:"direction"`
	Action      ActionSection      `json:"action"`
	Provision   ProvisionSection   `json:"provision"`
	Reaction    ReactionSection    `json:"reaction"`
}

// RealizationSection names the undertaking, who drives it and why.
type RealizationSection struct {
	Name     string   `json:"name"`
	Producer string   `json:"producer"`
	Reasons  []string `json:"reasons"`
	Values   []string `json:"values"`
}

type VisionSection struct {
	Definition string   `json:"definition"`
	Audience   string   `json:"audience"`
	Purpose    string   `json:"purpose"`
	Offerings  []string `json:"offerings"`
}

// SituationalAnalysis is a SWOT breakdown.
type SituationalAnalysis struct {
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
}

type RoleAssignments struct {
	Conductor   string   `json:"conductor"`
	Operators   []string `json:"operators"`
	Facilitator string   `json:"facilitator"`
	Pointer     string   `json:"pointer"`
	Mentor      string   `json:"mentor"`
}

type DirectionSection struct {
	Aspiration string              `json:"aspiration"`
	Situation  SituationalAnalysis `json:"situation"`
	Roadmap    []string            `json:"roadmap"`
	Roles      RoleAssignments     `json:"roles"`
}

type ActionSection struct {
	Priorities  []string `json:"priorities"`
	Owners      []string `json:"owners"`
	Timeframe   string   `json:"timeframe"`
	Checkpoints []string `json:"checkpoints"`
}

type ProvisionSection struct {
	People    []string `json:"people"`
	Materials []string `json:"materials"`
	Services  []string `json:"services"`
	Capital   float64  `json:"capital"`
}

// ReactionSection holds the four expected-outcome statements.
type ReactionSection struct {
	ExternalFinancial    string `json:"external_financial"`
	InternalFinancial    string `json:"internal_financial"`
	InternalNonFinancial string `json:"internal_non_financial"`
	ExternalNonFinancial string `json:"external_non_financial"`
}

// Clone deep-copies every list so the copy can be edited independently.
func (m RealizationMatrix) Clone() RealizationMatrix {
	cp := m
	cp.Realization.Reasons = slices.Clone(m.Realization.Reasons)
	cp.Realization.Values = slices.Clone(m.Realization.Values)
	cp.Vision.Offerings = slices.Clone(m.Vision.Offerings)
	cp.Direction.Situation.Opportunities = slices.Clone(m.Direction.Situation.Opportunities)
	cp.Direction.Situation.Threats = slices.Clone(m.Direction.Situation.Threats)
	cp.Direction.Situation.Strengths = slices.Clone(m.Direction.Situation.Strengths)
	cp.Direction.Situation.Weaknesses = slices.Clone(m.Direction.Situation.Weaknesses)
	cp.Direction.Roadmap = slices.Clone(m.Direction.Roadmap)
	cp.Direction.Roles.Operators = slices.Clone(m.Direction.Roles.Operators)
	cp.Action.Priorities = slices.Clone(m.Action.Priorities)
	cp.Action.Owners = slices.Clone(m.Action.Owners)
	cp.Action.Checkpoints = slices.Clone(m.Action.Checkpoints)
	cp.Provision.People = slices.Clone(m.Provision.People)
	cp.Provision.Materials = slices.Clone(m.Provision.Materials)
	cp.Provision.Services = slices.Clone(m.Provision.Services)
	return cp
}
