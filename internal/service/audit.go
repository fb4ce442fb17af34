package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/repository"
)

// AuditService records the service's audit trail: HTTP request summaries
// and domain actions such as optimize runs and catalog mutations.
type AuditService interface {
	// Record enqueues a record for background persistence. It never
	// blocks the caller; when the queue is full the record is dropped.
	Record(rec *model.AuditRecord)

	// Store writes a record synchronously.
	Store(ctx context.Context, rec *model.AuditRecord) error

	// Search returns matching records, newest first.
	Search(ctx context.Context, q model.AuditQuery) ([]model.AuditRecord, error)

	// Count returns how many records match the query.
	Count(ctx context.Context, q model.AuditQuery) (int64, error)

	// Close flushes queued records and stops the background writer.
	Close(ctx context.Context) error
}

// AuditOption configures the audit service.
type AuditOption func(*AuditServiceImpl)

// WithAuditQueueSize sets the capacity of the in-memory record queue.
func WithAuditQueueSize(n int) AuditOption {
	return func(s *AuditServiceImpl) { s.queueSize = n }
}

// WithAuditBatchSize sets how many records are written per bulk insert.
func WithAuditBatchSize(n int) AuditOption {
	return func(s *AuditServiceImpl) { s.batchSize = n }
}

// WithAuditFlushInterval sets how often a partial batch is written out.
func WithAuditFlushInterval(d time.Duration) AuditOption {
	return func(s *AuditServiceImpl) { s.flushEvery = d }
}

// WithAuditWriteTimeout bounds each background write to MongoDB.
func WithAuditWriteTimeout(d time.Duration) AuditOption {
	return func(s *AuditServiceImpl) { s.writeTimeout = d }
}

// AuditServiceImpl implements AuditService on top of the audit
// repository, batching background writes through a single worker.
type AuditServiceImpl struct {
	repo repository.AuditRepositoryInterface

	queueSize    int
	batchSize    int
	flushEvery   time.Duration
	writeTimeout time.Duration

	queue     chan *model.AuditRecord
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	dropped   int64
}

// NewAuditService creates the audit service and starts its background
// writer. Call Close on shutdown to flush the queue.
func NewAuditService(repo repository.AuditRepositoryInterface, opts ...AuditOption) *AuditServiceImpl {
	s := &AuditServiceImpl{
		repo:         repo,
		queueSize:    1000,
		batchSize:    16,
		flushEvery:   2 * time.Second,
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.queue = make(chan *model.AuditRecord, s.queueSize)
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.writeLoop()

	return s
}

// Record enqueues a record without blocking. Audit logging is best
// effort: under sustained backpressure records are counted and dropped.
func (s *AuditServiceImpl) Record(rec *model.AuditRecord) {
	select {
	case s.queue <- rec:
	default:
		atomic.AddInt64(&s.dropped, 1)
	}
}

// Dropped returns how many records were discarded due to a full queue.
func (s *AuditServiceImpl) Dropped() int64 {
	return atomic.LoadInt64(&s.dropped)
}

// Store writes a record synchronously, bypassing the queue.
func (s *AuditServiceImpl) Store(ctx context.Context, rec *model.AuditRecord) error {
	return s.repo.Insert(ctx, toAuditDocument(rec))
}

// Search returns matching records, newest first.
func (s *AuditServiceImpl) Search(ctx context.Context, q model.AuditQuery) ([]model.AuditRecord, error) {
	docs, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	records := make([]model.AuditRecord, len(docs))
	for i, doc := range docs {
		records[i] = toAuditRecord(doc)
	}
	return records, nil
}

// Count returns how many records match the query.
func (s *AuditServiceImpl) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	return s.repo.Count(ctx, q)
}

// Close stops the background writer after flushing queued records.
// The context bounds how long to wait for the flush.
func (s *AuditServiceImpl) Close(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeLoop batches queued records and writes them out when the batch
// fills or the flush interval elapses.
func (s *AuditServiceImpl) writeLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.flushEvery)
	defer ticker.Stop()

	batch := make([]*repository.AuditDocument, 0, s.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.repo.InsertBatch(ctx, batch); err != nil {
			log.Warn().Err(err).Int("records", len(batch)).Msg("Audit batch write failed")
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-s.queue:
			batch = append(batch, toAuditDocument(rec))
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for {
				select {
				case rec := <-s.queue:
					batch = append(batch, toAuditDocument(rec))
					if len(batch) >= s.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func toAuditDocument(rec *model.AuditRecord) *repository.AuditDocument {
	return &repository.AuditDocument{
		ID:         rec.ID,
		At:         rec.At,
		Level:      rec.Level,
		Message:    rec.Message,
		RequestID:  rec.RequestID,
		Method:     rec.Method,
		Path:       rec.Path,
		Status:     rec.Status,
		DurationMS: rec.DurationMS,
		ClientIP:   rec.ClientIP,
		UserAgent:  rec.UserAgent,
		Error:      rec.Error,
		Action:     rec.Action,
		Detail:     rec.Detail,
	}
}

func toAuditRecord(doc *repository.AuditDocument) model.AuditRecord {
	return model.AuditRecord{
		ID:         doc.ID,
		At:         doc.At,
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		Status:     doc.Status,
		DurationMS: doc.DurationMS,
		ClientIP:   doc.ClientIP,
		UserAgent:  doc.UserAgent,
		Error:      doc.Error,
		Action:     doc.Action,
		Detail:     doc.Detail,
	}
}
