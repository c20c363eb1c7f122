package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loan-evaluator/domain"
	"loan-evaluator/repository"
)

// Sampling is the fixed generation setup sent with every prompt.
type Sampling struct {
	MaxTokens   int
	Temperature float64
}

func DefaultSampling() Sampling {
	return Sampling{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

var defaultComposer = MustNewPromptComposer(DefaultPromptTemplate)

// EvaluationService runs one evaluation per call: validate, amortize,
// compose, complete, reconcile.
type EvaluationService struct {
	completer Completer
	composer  *PromptComposer
	sampling  Sampling
	repo      repository.EvaluationRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewEvaluationService creates an EvaluationService. repo may be nil, in
// which case nothing is audited.
func NewEvaluationService(
	completer Completer,
	repo repository.EvaluationRepository,
	logger *zap.Logger,
	sampling Sampling,
) *EvaluationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sampling.MaxTokens <= 0 {
		sampling.MaxTokens = DefaultMaxTokens
	}
	return &EvaluationService{
		completer: completer,
		composer:  defaultComposer,
		sampling:  sampling,
		repo:      repo,
		logger:    logger,
		now:       time.Now,
	}
}

// WithComposer returns a copy of s that renders prompts with c.
func (s *EvaluationService) WithComposer(c *PromptComposer) *EvaluationService {
	cp := *s
	cp.composer = c
	return &cp
}

// Evaluate decides on params. On error no evaluation is returned.
func (s *EvaluationService) Evaluate(ctx context.Context, params domain.LoanParameters) (domain.Evaluation, error) {
	logger := s.logger.With(zap.String("op", "evaluate"), zap.String("mode", params.Mode.String()))

	figures, err := validateParameters(params)
	if err != nil {
		logger.Info("parameters rejected", zap.Error(err))
		s.audit(params.Mode, "", nil, err)
		return domain.Evaluation{}, err
	}

	totals := ComputeAmortization(figures.LoanAmount, figures.InterestRate)
	loanRatio := LoanRatio(figures.LoanAmount, figures.HomeValue)
	incomeRatio := IncomeRatio(totals.MonthlyPayment, figures.AnnualIncome)

	prompt, err := s.composer.Compose(params, loanRatio, incomeRatio)
	if err != nil {
		logger.Error("failed to compose prompt", zap.Error(err))
		s.audit(params.Mode, "", nil, err)
		return domain.Evaluation{}, err
	}
	logger.Debug("composed prompt", zap.String("prompt", prompt))

	resp, err := s.completer.Complete(ctx, CompletionRequest{
		Messages:    []Message{{Role: PromptRole, Content: prompt}},
		MaxTokens:   s.sampling.MaxTokens,
		Temperature: s.sampling.Temperature,
	})
	if err != nil {
		err = asEvaluationFailure(err)
		logger.Error("completion failed", zap.Error(err))
		s.audit(params.Mode, prompt, nil, err)
		return domain.Evaluation{}, err
	}

	content, err := firstChoiceContent(resp)
	if err != nil {
		logger.Error("completion had no choices", zap.String("completion_id", resp.ID), zap.Error(err))
		s.audit(params.Mode, prompt, nil, err)
		return domain.Evaluation{}, err
	}

	decision, err := Reconcile(params.Mode, content)
	if err != nil {
		logger.Error("unusable completion reply",
			zap.String("completion_id", resp.ID),
			zap.String("content", content),
			zap.Error(err),
		)
		s.audit(params.Mode, prompt, nil, err)
		return domain.Evaluation{}, err
	}

	evaluation := domain.Evaluation{
		Mode:        params.Mode,
		Totals:      totals,
		LoanRatio:   loanRatio,
		IncomeRatio: incomeRatio,
		Decision:    decision,
	}
	logger.Info("loan evaluated",
		zap.String("completion_id", resp.ID),
		zap.String("status", string(decision.Status)),
		zap.Int("loan_ratio", loanRatio),
		zap.Int("income_ratio", incomeRatio),
	)
	s.audit(params.Mode, prompt, &evaluation, nil)
	return evaluation, nil
}

// asEvaluationFailure keeps typed failures and treats anything else coming
// out of a Completer as a transport failure.
func asEvaluationFailure(err error) error {
	var transportErr *TransportError
	var formatErr *ResponseFormatError
	if errors.As(err, &transportErr) || errors.As(err, &formatErr) {
		return err
	}
	return &TransportError{Err: err}
}

func (s *EvaluationService) audit(mode domain.Mode, prompt string, result *domain.Evaluation, evalErr error) {
	if s.repo == nil {
		return
	}

	record := domain.AuditRecord{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Mode:      mode,
		Prompt:    prompt,
		Outcome:   domain.OutcomeDecided,
		Result:    result,
	}
	if evalErr != nil {
		record.Error = evalErr.Error()
		record.Outcome = domain.OutcomeFailed
		var validationErr *ValidationError
		if errors.As(evalErr, &validationErr) {
			record.Outcome = domain.OutcomeRejected
		}
	}

	// Guardar el registro (no crítico si falla)
	if err := s.repo.Save(record); err != nil {
		s.logger.Warn("failed to save evaluation audit record",
			zap.String("op", "audit"),
			zap.String("id", record.ID),
			zap.Error(err),
		)
	}
}
