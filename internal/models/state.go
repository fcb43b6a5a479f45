package models

// WizardStep names the states of the add-task conversation.
type WizardStep int

const (
	StepNone WizardStep = iota
	StepDescription
	StepDue
	StepTopic
	StepEditDue // out-of-band: re-entering a due time for an existing task
)
