package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/repository"
)

// TimeLayout is the local wall-clock format used for entry timestamps.
const TimeLayout = "2006-01-02 15:04:05"

type entryDoc struct {
	Token    int64  `json:"token"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Entered  string `json:"entered"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
	User     string `json:"user"`
}

// QueueRepository implements queue.Repository over a JSON file
type QueueRepository struct {
	file *File[entryDoc]
}

// NewQueueRepository creates a new QueueRepository backed by path
func NewQueueRepository(path string) *QueueRepository {
	return &QueueRepository{file: NewFile[entryDoc](path)}
}

// Append issues max(token)+1 and appends the built entry
func (r *QueueRepository) Append(ctx context.Context, build func(token int64) (*queue.Entry, error)) (*queue.Entry, error) {
	var stored *queue.Entry
	err := r.file.Update(ctx, func(docs []entryDoc) ([]entryDoc, error) {
		var maxToken int64
		for _, d := range docs {
			maxToken = max(maxToken, d.Token)
		}

		entry, err := build(maxToken + 1)
		if err != nil {
			return nil, err
		}
		doc := toDoc(entry)
		stored, err = fromDoc(doc)
		if err != nil {
			return nil, err
		}
		return append(docs, doc), nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Update applies mutate to the entry with the given token
func (r *QueueRepository) Update(ctx context.Context, token int64, mutate func(*queue.Entry) error) (*queue.Entry, error) {
	var stored *queue.Entry
	err := r.file.Update(ctx, func(docs []entryDoc) ([]entryDoc, error) {
		for i, d := range docs {
			if d.Token != token {
				continue
			}
			entry, err := fromDoc(d)
			if err != nil {
				return nil, err
			}
			if err := mutate(entry); err != nil {
				return nil, err
			}
			docs[i] = toDoc(entry)
			stored, err = fromDoc(docs[i])
			if err != nil {
				return nil, err
			}
			return docs, nil
		}
		return nil, repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Get retrieves an entry by token
func (r *QueueRepository) Get(ctx context.Context, token int64) (*queue.Entry, error) {
	docs, err := r.file.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Token == token {
			return fromDoc(d)
		}
	}
	return nil, repository.ErrNotFound
}

// List returns entries matching opts in file order
func (r *QueueRepository) List(ctx context.Context, opts queue.ListOptions) ([]queue.Entry, error) {
	docs, err := r.file.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]queue.Entry, 0, len(docs))
	for _, d := range docs {
		entry, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		if opts.Matches(*entry) {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func toDoc(e *queue.Entry) entryDoc {
	return entryDoc{
		Token:    e.Token,
		Name:     e.Name,
		Age:      e.Age,
		Category: e.Category,
		Notes:    e.Notes,
		Entered:  formatTime(&e.EnteredAt),
		Start:    formatTime(e.StartedAt),
		End:      formatTime(e.EndedAt),
		Status:   string(e.Status),
		User:     e.Owner,
	}
}

func fromDoc(d entryDoc) (*queue.Entry, error) {
	status, err := queue.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d: %w", repository.ErrStorage, d.Token, err)
	}
	entered, err := parseTime(d.Entered)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d entered: %w", repository.ErrStorage, d.Token, err)
	}
	started, err := parseTime(d.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d start: %w", repository.ErrStorage, d.Token, err)
	}
	ended, err := parseTime(d.End)
	if err != nil {
		return nil, fmt.Errorf("%w: token %d end: %w", repository.ErrStorage, d.Token, err)
	}

	e := &queue.Entry{
		Token:     d.Token,
		Name:      d.Name,
		Age:       d.Age,
		Category:  d.Category,
		Notes:     d.Notes,
		StartedAt: started,
		EndedAt:   ended,
		Status:    status,
		Owner:     d.User,
	}
	if entered != nil {
		e.EnteredAt = *entered
	}
	return e, nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(TimeLayout)
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
