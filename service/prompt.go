package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"loan-evaluator/domain"
)

const (
	SlotExtraRules     = "ExtraRules"
	SlotReasonPolicy   = "ReasonPolicy"
	SlotLoanParameters = "LoanParameters"
)

var promptSlots = []string{SlotExtraRules, SlotReasonPolicy, SlotLoanParameters}

// DefaultPromptTemplate lists the canonical approval rules. The three slots
// are filled per evaluation.
const DefaultPromptTemplate = `system:
You are a loan evaluator bot. The following parameters must be met to approve a loan:

- The loan ratio is less than or equal to 80%.
- The lender has a credit score greater than 620.
- The lender has not had bankruptcies in the last 3 years.
- The lender's monthly payment must fall less than 30% of their monthly income after taxes.
- The purchase home zip code cannot be in zip code 10000-10100. These areas are at risk of volcanic activity.
{{.ExtraRules}}

{{.ReasonPolicy}}

user:
Can the following loan be approved?
{{.LoanParameters}}

Respond in the following JSON format:
{
  "status": ""//Approved or Denied
  "reason": ""//Explanation
}
`

// PromptComposer renders the policy evaluation prompt.
type PromptComposer struct {
	tmpl *template.Template
}

// NewPromptComposer parses text and checks that every slot is referenced.
func NewPromptComposer(text string) (*PromptComposer, error) {
	for _, slot := range promptSlots {
		ref := regexp.MustCompile(`\{\{-?\s*\.` + slot + `\s*-?\}\}`)
		if !ref.MatchString(text) {
			return nil, &TemplateError{Slot: slot}
		}
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, &TemplateError{Err: err}
	}
	return &PromptComposer{tmpl: tmpl}, nil
}

// MustNewPromptComposer is NewPromptComposer for templates known at compile
// time. It panics on a malformed template.
func MustNewPromptComposer(text string) *PromptComposer {
	c, err := NewPromptComposer(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Compose renders the prompt for params using the already computed ratios.
func (c *PromptComposer) Compose(params domain.LoanParameters, loanRatio, incomeRatio int) (string, error) {
	policy, ok := PolicyFor(params.Mode)
	if !ok {
		return "", fmt.Errorf("no policy for mode %q", params.Mode)
	}

	var extraRules string
	if len(policy.ExtraRules) > 0 {
		extraRules = strings.Join(policy.ExtraRules, "\n") + "\n"
	}

	slots := map[string]string{
		SlotExtraRules:     extraRules,
		SlotReasonPolicy:   policy.ReasonPolicy + "\n",
		SlotLoanParameters: loanNarrative(params, policy, loanRatio, incomeRatio),
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, slots); err != nil {
		return "", &TemplateError{Err: err}
	}
	return buf.String(), nil
}

func loanNarrative(params domain.LoanParameters, policy Policy, loanRatio, incomeRatio int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- The loan ratio is %d%%\n", loanRatio)
	fmt.Fprintf(&b, "- The lender's credit score is %s\n", strings.TrimSpace(params.CreditScore))
	if params.Bankruptcies {
		b.WriteString("- The lender has had bankruptcies in the last 3 years\n")
	} else {
		b.WriteString("- The lender has not had bankruptcies in the last 3 years\n")
	}
	if policy.DiscloseSurname {
		fmt.Fprintf(&b, "- The lender's last name is %s\n", strings.TrimSpace(params.LenderLastName))
	}
	fmt.Fprintf(&b, "- The home zip code is %s\n", strings.TrimSpace(params.HomeZipCode))
	fmt.Fprintf(&b, "- The monthly payment is %d%% of the monthly income.\n", incomeRatio)
	return b.String()
}
