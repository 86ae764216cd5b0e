package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/abhisek/matchup/ent"
	"github.com/abhisek/matchup/ent/problemrecord"
)

// problemRepo implements ProblemRepo backed by ent.
type problemRepo struct {
	client *ent.Client
}

func (r *problemRepo) Save(ctx context.Context, rec ProblemRecord) (bool, error) {
	hash, err := contentHash(rec.Content)
	if err != nil {
		return false, err
	}

	existing, err := r.client.ProblemRecord.Query().
		Where(problemrecord.ProblemID(rec.ProblemID)).
		Only(ctx)
	if ent.IsNotFound(err) {
		_, err = r.client.ProblemRecord.Create().
			SetProblemID(rec.ProblemID).
			SetTaskID(rec.TaskID).
			SetKind(rec.Type).
			SetContent(rec.Content).
			SetContentHash(hash).
			Save(ctx)
		if err != nil {
			return false, fmt.Errorf("create problem %s: %w", rec.ProblemID, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup problem %s: %w", rec.ProblemID, err)
	}

	if existing.ContentHash == hash && existing.TaskID == rec.TaskID && existing.Kind == rec.Type {
		return false, nil
	}

	_, err = existing.Update().
		SetTaskID(rec.TaskID).
		SetKind(rec.Type).
		SetContent(rec.Content).
		SetContentHash(hash).
		Save(ctx)
	if err != nil {
		return false, fmt.Errorf("update problem %s: %w", rec.ProblemID, err)
	}
	return existing.ContentHash != hash, nil
}

func (r *problemRepo) Get(ctx context.Context, problemID string) (*ProblemRecord, error) {
	e, err := r.client.ProblemRecord.Query().
		Where(problemrecord.ProblemID(problemID)).
		Only(ctx)
	if ent.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %s: %w", problemID, err)
	}
	rec := problemRecord(e)
	return &rec, nil
}

func (r *problemRepo) List(ctx context.Context, taskID string) ([]ProblemRecord, error) {
	query := r.client.ProblemRecord.Query().
		Order(ent.Asc(problemrecord.FieldProblemID))
	if taskID != "" {
		query = query.Where(problemrecord.TaskID(taskID))
	}

	rows, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	records := make([]ProblemRecord, len(rows))
	for i, e := range rows {
		records[i] = problemRecord(e)
	}
	return records, nil
}

func problemRecord(e *ent.ProblemRecord) ProblemRecord {
	return ProblemRecord{
		ProblemID:   e.ProblemID,
		TaskID:      e.TaskID,
		Type:        e.Kind,
		Content:     e.Content,
		ContentHash: e.ContentHash,
		UpdatedAt:   e.UpdatedAt,
	}
}

// contentHash hashes the JSON encoding of content. encoding/json sorts map
// keys, so equal content always hashes the same.
func contentHash(content map[string]any) (string, error) {
	b, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("encode problem content: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
