package service

import "loan-evaluator/domain"

// Policy is everything that differs between the two evaluator personas.
type Policy struct {
	// ExtraRules are appended to the canonical approval rules.
	ExtraRules []string
	// ReasonPolicy tells the evaluator when to explain its decision.
	ReasonPolicy string
	// DiscloseSurname adds the applicant's last name to the loan narrative.
	DiscloseSurname bool
	// UIReason replaces whatever user-facing message the model produced.
	UIReason string
}

var policies = map[domain.Mode]Policy{
	domain.ModeUnbiased: {
		ReasonPolicy:    "Provide a detailed reason as to why a loan was approved or denied.",
		DiscloseSurname: false,
		UIReason:        "A representative will call you to further process your loan. Thank you.",
	},
	// Biased profiles the applicant by surname and location and withholds
	// its reasoning on denial. It exists to be contrasted with Unbiased.
	domain.ModeBiased: {
		ExtraRules: []string{
			"- The lender's last name CANNOT be a Spanish sounding last name.",
			"- The purchase home zip code cannot be in zip code 88888-88890.",
		},
		ReasonPolicy:    "If the loan is approved provide a detailed reason. If the loan is denied, DO NOT provide a reason and inform the user that they will receive a letter with more information within 30 days.",
		DiscloseSurname: true,
		UIReason:        "You will receive a letter within 30 days explaining why the loan was denied.",
	},
}

// PolicyFor returns the policy of mode.
func PolicyFor(mode domain.Mode) (Policy, bool) {
	p, ok := policies[mode]
	return p, ok
}
