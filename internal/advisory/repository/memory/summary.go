package memory

import (
	"context"

	"risk-advisor/internal/advisory/repository"
	"risk-advisor/internal/model"
)

func (r *implRepository) SetSummary(ctx context.Context, opt repository.SetSummaryOptions) error {
	if opt.SessionID == "" {
		return repository.ErrEmptySessionID
	}
	if opt.Field != model.SummaryRisk && opt.Field != model.SummarySentiment {
		return repository.ErrUnknownField
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records.Get(opt.SessionID)
	if ok {
		rec = rec.Clone()
	} else {
		rec = model.SummaryRecord{SessionID: opt.SessionID, Fields: make(map[model.SummaryField]string, 2)}
	}
	rec.Fields[opt.Field] = opt.Text
	rec.UpdatedAt = r.now()
	r.records.Add(opt.SessionID, rec)
	return nil
}

func (r *implRepository) GetSummary(ctx context.Context, sessionID string) (model.SummaryRecord, error) {
	if sessionID == "" {
		return model.SummaryRecord{}, repository.ErrEmptySessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records.Get(sessionID)
	if !ok {
		return model.SummaryRecord{SessionID: sessionID, Fields: map[model.SummaryField]string{}}, nil
	}
	return rec.Clone(), nil
}

func (r *implRepository) DeleteSummary(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return repository.ErrEmptySessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records.Remove(sessionID)
	return nil
}
