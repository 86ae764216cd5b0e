package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Origin string    // exact origin label, "" = any
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Origin    string
	LLMRequestEventData
}

// LLMPurposeStats aggregates LLM usage for one purpose label.
type LLMPurposeStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// GradeEventData captures the outcome of one graded submission.
type GradeEventData struct {
	TaskID       string
	ProblemID    string
	ItemCount    int
	InvalidCount int
	Valid        bool
	Outcome      string
}

// GradeEventRecord is a stored grade event.
type GradeEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	Origin    string
	GradeEventData
}

// GradeStat summarizes every graded attempt at one problem.
type GradeStat struct {
	ProblemID   string
	Attempts    int
	Passed      int
	MeanInvalid float64
	LastGraded  time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeStats, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendGrade records the outcome of a graded submission.
	AppendGrade(ctx context.Context, data GradeEventData) error

	// QueryGradeEvents returns grade events, newest first.
	QueryGradeEvents(ctx context.Context, opts QueryOpts) ([]GradeEventRecord, error)

	// GradeStats aggregates grade events per problem, ordered by problem id.
	GradeStats(ctx context.Context) ([]GradeStat, error)
}

// ProblemRecord is the stored canonical content of a published problem.
type ProblemRecord struct {
	ProblemID   string
	TaskID      string
	Type        string
	Content     map[string]any
	ContentHash string
	UpdatedAt   time.Time
}

// ProblemRepo stores published problem definitions.
type ProblemRepo interface {
	// Save inserts the record or replaces the one with the same problem id.
	// It reports whether the stored content changed.
	Save(ctx context.Context, rec ProblemRecord) (bool, error)

	// Get returns the record for a problem id, or nil if none exists.
	Get(ctx context.Context, problemID string) (*ProblemRecord, error)

	// List returns all records for a task, or every record when taskID is
	// empty, ordered by problem id.
	List(ctx context.Context, taskID string) ([]ProblemRecord, error)
}
