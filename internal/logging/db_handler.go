package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dbHandlerBatchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
// Records are buffered and written every flush interval, or sooner once a
// full batch has accumulated.
type DBHandler struct {
	core  *dbHandlerCore
	attrs []slog.Attr
}

type dbHandlerCore struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewDBHandler(db *gorm.DB, flushInterval time.Duration) *DBHandler {
	core := &dbHandlerCore{
		db:     db,
		buffer: make([]models.SystemLog, 0, dbHandlerBatchSize),
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	core.wg.Add(1)
	go core.flushLoop()
	return &DBHandler{core: core}
}

func (c *dbHandlerCore) flushLoop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ticker.C:
			c.flush()
		case <-c.done:
			c.flush()
			return
		}
	}
}

func (c *dbHandlerCore) flush() {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return
	}
	batch := c.buffer
	c.buffer = make([]models.SystemLog, 0, dbHandlerBatchSize)
	c.mu.Unlock()

	if err := c.db.CreateInBatches(batch, dbHandlerBatchSize).Error; err != nil {
		// Goes through the default logger; must not be routed back here.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes anything still buffered and stops the background loop.
func (h *DBHandler) Stop() {
	h.core.stopOnce.Do(func() {
		h.core.ticker.Stop()
		close(h.core.done)
	})
	h.core.wg.Wait()
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.core.mu.Lock()
	h.core.buffer = append(h.core.buffer, entry)
	needFlush := len(h.core.buffer) >= dbHandlerBatchSize
	h.core.mu.Unlock()

	if needFlush {
		go h.core.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{core: h.core, attrs: merged}
}

// WithGroup is a no-op: system_logs has a flat layout.
func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}
