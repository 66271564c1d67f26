package model

import "slices"

// MatrixEdit updates exactly one field of a RealizationMatrix. Edits are only
// built through the constructors below, one per field.
type MatrixEdit struct {
	field string
	apply func(*RealizationMatrix)
}

// Field is the edited field as "section.field".
func (e MatrixEdit) Field() string { return e.field }

// Apply mutates m in place.
func (e MatrixEdit) Apply(m *RealizationMatrix) {
	if e.apply != nil {
		e.apply(m)
	}
}

func edit(field string, fn func(*RealizationMatrix)) MatrixEdit {
	return MatrixEdit{field: field, apply: fn}
}

func list(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}

// Realization

func SetRealizationName(v string) MatrixEdit {
	return edit("realization.name", func(m *RealizationMatrix) { m.Realization.Name = v })
}

func SetRealizationProducer(v string) MatrixEdit {
	return edit("realization.producer", func(m *RealizationMatrix) { m.Realization.Producer = v })
}

func SetRealizationReasons(v []string) MatrixEdit {
	v = list(v)
	return edit("realization.reasons", func(m *RealizationMatrix) { m.Realization.Reasons = slices.Clone(v) })
}

func SetRealizationValues(v []string) MatrixEdit {
	v = list(v)
	return edit("realization.values", func(m *RealizationMatrix) { m.Realization.Values = slices.Clone(v) })
}

// Vision

func SetVisionDefinition(v string) MatrixEdit {
	return edit("vision.definition", func(m *RealizationMatrix) { m.Vision.Definition = v })
}

func SetVisionAudience(v string) MatrixEdit {
	return edit("vision.audience", func(m *RealizationMatrix) { m.Vision.Audience = v })
}

func SetVisionPurpose(v string) MatrixEdit {
	return edit("vision.purpose", func(m *RealizationMatrix) { m.Vision.Purpose = v })
}

func SetVisionOfferings(v []string) MatrixEdit {
	v = list(v)
	return edit("vision.offerings", func(m *RealizationMatrix) { m.Vision.Offerings = slices.Clone(v) })
}

// Direction

func SetDirectionAspiration(v string) MatrixEdit {
	return edit("direction.aspiration", func(m *RealizationMatrix) { m.Direction.Aspiration = v })
}

func SetDirectionOpportunities(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.situation.opportunities", func(m *RealizationMatrix) {
		m.Direction.Situation.Opportunities = slices.Clone(v)
	})
}

func SetDirectionThreats(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.situation.threats", func(m *RealizationMatrix) {
		m.Direction.Situation.Threats = slices.Clone(v)
	})
}

func SetDirectionStrengths(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.situation.strengths", func(m *RealizationMatrix) {
		m.Direction.Situation.Strengths = slices.Clone(v)
	})
}

func SetDirectionWeaknesses(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.situation.weaknesses", func(m *RealizationMatrix) {
		m.Direction.Situation.Weaknesses = slices.Clone(v)
	})
}

func SetDirectionRoadmap(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.roadmap", func(m *RealizationMatrix) { m.Direction.Roadmap = slices.Clone(v) })
}

func SetDirectionConductor(v string) MatrixEdit {
	return edit("direction.roles.conductor", func(m *RealizationMatrix) { m.Direction.Roles.Conductor = v })
}

func SetDirectionOperators(v []string) MatrixEdit {
	v = list(v)
	return edit("direction.roles.operators", func(m *RealizationMatrix) {
		m.Direction.Roles.Operators = slices.Clone(v)
	})
}

func SetDirectionFacilitator(v string) MatrixEdit {
	return edit("direction.roles.facilitator", func(m *RealizationMatrix) { m.Direction.Roles.Facilitator = v })
}

func SetDirectionPointer(v string) MatrixEdit {
	return edit("direction.roles.pointer", func(m *RealizationMatrix) { m.Direction.Roles.Pointer = v })
}

func SetDirectionMentor(v string) MatrixEdit {
	return edit("direction.roles.mentor", func(m *RealizationMatrix) { m.Direction.Roles.Mentor = v })
}

// Action

func SetActionPriorities(v []string) MatrixEdit {
	v = list(v)
	return edit("action.priorities", func(m *RealizationMatrix) { m.Action.Priorities = slices.Clone(v) })
}

func SetActionOwners(v []string) MatrixEdit {
	v = list(v)
	return edit("action.owners", func(m *RealizationMatrix) { m.Action.Owners = slices.Clone(v) })
}

func SetActionTimeframe(v string) MatrixEdit {
	return edit("action.timeframe", func(m *RealizationMatrix) { m.Action.Timeframe = v })
}

func SetActionCheckpoints(v []string) MatrixEdit {
	v = list(v)
	return edit("action.checkpoints", func(m *RealizationMatrix) { m.Action.Checkpoints = slices.Clone(v) })
}

// Provision

func SetProvisionPeople(v []string) MatrixEdit {
	v = list(v)
	return edit("provision.people", func(m *RealizationMatrix) { m.Provision.People = slices.Clone(v) })
}

func SetProvisionMaterials(v []string) MatrixEdit {
	v = list(v)
	return edit("provision.materials", func(m *RealizationMatrix) { m.Provision.Materials = slices.Clone(v) })
}

func SetProvisionServices(v []string) MatrixEdit {
	v = list(v)
	return edit("provision.services", func(m *RealizationMatrix) { m.Provision.Services = slices.Clone(v) })
}

func SetProvisionCapital(v float64) MatrixEdit {
	return edit("provision.capital", func(m *RealizationMatrix) { m.Provision.Capital = v })
}

// Reaction

func SetReactionExternalFinancial(v string) MatrixEdit {
	return edit("reaction.external_financial", func(m *RealizationMatrix) { m.Reaction.ExternalFinancial = v })
}

func SetReactionInternalFinancial(v string) MatrixEdit {
	return edit("reaction.internal_financial", func(m *RealizationMatrix) { m.Reaction.InternalFinancial = v })
}

func SetReactionInternalNonFinancial(v string) MatrixEdit {
	return edit("reaction.internal_non_financial", func(m *RealizationMatrix) { m.Reaction.InternalNonFinancial = v })
}

func SetReactionExternalNonFinancial(v string) MatrixEdit {
	return edit("reaction.external_non_financial", func(m *RealizationMatrix) { m.Reaction.ExternalNonFinancial = v })
}
