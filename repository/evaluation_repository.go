package repository

import "loan-evaluator/domain"

// EvaluationRepository keeps the audit trail of evaluation attempts.
type EvaluationRepository interface {
	Save(record domain.AuditRecord) error
	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]domain.AuditRecord, error)
}
