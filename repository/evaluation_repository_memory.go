package repository

import (
	"sync"

	"loan-evaluator/domain"
)

// EvaluationRepositoryMemory is an in-memory implementation of
// EvaluationRepository holding at most capacity records.
type EvaluationRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	data     []domain.AuditRecord
}

// NewEvaluationRepositoryMemory creates a new in-memory audit repository.
// A capacity of zero or less keeps every record.
func NewEvaluationRepositoryMemory(capacity int) *EvaluationRepositoryMemory {
	return &EvaluationRepositoryMemory{
		capacity: capacity,
		data:     []domain.AuditRecord{},
	}
}

// Save stores the record in memory, dropping the oldest one when full.
func (r *EvaluationRepositoryMemory) Save(record domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if r.capacity > 0 && len(r.data) > r.capacity {
		r.data = r.data[len(r.data)-r.capacity:]
	}
	return nil
}

func (r *EvaluationRepositoryMemory) Recent(limit int) ([]domain.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.AuditRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
