// Package autosave keeps a remote file's content and title eventually
// consistent with local edits. It debounces rapid edits into batched
// writes, throttles the network call rate, survives session teardown
// with a best-effort beacon, and never lets an older save overwrite a
// newer local edit's saved marker.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"snipvault/domain/config"

	"go.uber.org/zap"
)

// Status is the save state surfaced to the UI indicator
type Status string

const (
	StatusSaved   Status = "saved"
	StatusSaving  Status = "saving"
	StatusUnsaved Status = "unsaved"
)

// Saver performs the permission-checked persistence call for a file.
// A nil title means the title did not change.
type Saver interface {
	SaveContent(ctx context.Context, fileID, content string, title *string) error
}

// Options configures a Controller
type Options struct {
	FileID         string
	InitialContent string
	InitialTitle   string

	// CanEdit disables all writes for read-only sessions; local state
	// is still tracked so the view stays responsive.
	CanEdit bool

	Saver  Saver
	Sender BestEffortSender

	// Zero values fall back to the domain defaults
	Debounce         time.Duration
	MinSaveInterval  time.Duration
	MaxContentLength int

	Logger *zap.Logger
}

// State is a snapshot of the session for the UI and tests
type State struct {
	FileID           string
	PendingContent   string
	PendingTitle     string
	LastSavedContent string
	LastSavedTitle   string
	Status           Status
	LastError        string
	LastSaveTime     time.Time
}

// Controller is the per-editor-session autosave state machine. All
// methods are safe for concurrent use; the save round-trip itself runs
// outside the lock so edits are never blocked on save completion.
type Controller struct {
	saver  Saver
	sender BestEffortSender
	logger *zap.Logger

	debounceDelay    time.Duration
	minSaveInterval  time.Duration
	maxContentLength int

	debounce  *Scheduler
	sweepStop chan struct{}
	sweepOnce sync.Once

	mu               sync.Mutex
	fileID           string
	canEdit          bool
	pendingContent   string
	pendingTitle     string
	lastSavedContent string
	lastSavedTitle   string
	status           Status
	lastError        string
	lastSaveAt       time.Time

	// edited is set on the first genuine local change; re-initialization
	// alone never triggers the teardown write.
	edited bool

	inFlight bool
	// generation invalidates in-flight results after a file switch
	generation uint64
	closed     bool
}

// NewController creates a controller bound to one open file
func NewController(opts Options) (*Controller, error) {
	if opts.Saver == nil {
		return nil, errors.New("autosave: Saver is required")
	}

	cfg := config.DefaultDomainConfig()
	if opts.Debounce <= 0 {
		opts.Debounce = cfg.SaveDebounce
	}
	if opts.MinSaveInterval <= 0 {
		opts.MinSaveInterval = cfg.MinSaveInterval
	}
	if opts.MaxContentLength <= 0 {
		opts.MaxContentLength = cfg.MaxContentLength
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Controller{
		saver:            opts.Saver,
		sender:           opts.Sender,
		logger:           opts.Logger,
		debounceDelay:    opts.Debounce,
		minSaveInterval:  opts.MinSaveInterval,
		maxContentLength: opts.MaxContentLength,
		debounce:         NewScheduler(),
		sweepStop:        make(chan struct{}),
		fileID:           opts.FileID,
		canEdit:          opts.CanEdit,
		pendingContent:   opts.InitialContent,
		pendingTitle:     opts.InitialTitle,
		lastSavedContent: opts.InitialContent,
		lastSavedTitle:   opts.InitialTitle,
		status:           StatusSaved,
	}

	go c.sweepLoop()
	return c, nil
}

// sweepLoop periodically retries outstanding dirty state that the
// throttle deferred or a failed save left behind.
func (c *Controller) sweepLoop() {
	ticker := time.NewTicker(c.minSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.sweepStop:
			return
		case <-ticker.C:
			c.mu.Lock()
			due := !c.closed && !c.inFlight && c.canEdit && c.dirtyLocked()
			c.mu.Unlock()
			if due {
				c.Flush(false)
			}
		}
	}
}

func (c *Controller) dirtyLocked() bool {
	return c.pendingContent != c.lastSavedContent || c.pendingTitle != c.lastSavedTitle
}

// SetContent records a local content edit and schedules a debounced save
func (c *Controller) SetContent(newContent string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pendingContent = newContent

	if !c.canEdit {
		return
	}

	if len(newContent) > c.maxContentLength {
		c.lastError = fmt.Sprintf("content exceeds maximum length (%d/%d)", len(newContent), c.maxContentLength)
		c.status = StatusUnsaved
		return
	}

	if newContent != c.lastSavedContent {
		c.edited = true
		c.status = StatusUnsaved
		c.lastError = ""
		c.scheduleFlushLocked()
	} else if c.pendingTitle == c.lastSavedTitle {
		c.status = StatusSaved
	}
}

// SetTitle records a local title edit and schedules a debounced save.
// Title and content share one timer: whichever edit lands last restarts
// the window, and the flush carries both fields.
func (c *Controller) SetTitle(newTitle string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pendingTitle = newTitle

	if !c.canEdit {
		return
	}

	if newTitle != c.lastSavedTitle {
		c.edited = true
		c.status = StatusUnsaved
		c.scheduleFlushLocked()
	} else if c.pendingContent == c.lastSavedContent {
		c.status = StatusSaved
	}
}

func (c *Controller) scheduleFlushLocked() {
	c.debounce.Schedule(c.debounceDelay, func() {
		c.Flush(false)
	})
}

// Flush performs the persistence round-trip. It is reentrant-safe: a
// second fire while a save is in flight is a no-op, and saves closer
// together than the minimum interval are deferred to the sweep unless
// immediate is set.
func (c *Controller) Flush(immediate bool) {
	c.mu.Lock()

	if c.closed || c.inFlight {
		c.mu.Unlock()
		return
	}
	if !c.canEdit {
		c.mu.Unlock()
		return
	}
	if !c.dirtyLocked() {
		c.status = StatusSaved
		c.mu.Unlock()
		return
	}
	if len(c.pendingContent) > c.maxContentLength {
		c.lastError = fmt.Sprintf("content exceeds maximum length of %d characters", c.maxContentLength)
		c.status = StatusUnsaved
		c.mu.Unlock()
		return
	}
	if !immediate && !c.lastSaveAt.IsZero() && time.Since(c.lastSaveAt) < c.minSaveInterval {
		// Too soon after the previous call; the sweep picks it up
		c.mu.Unlock()
		return
	}

	gen := c.generation
	fileID := c.fileID
	sentContent := c.pendingContent
	sentTitle := c.pendingTitle

	var title *string
	if sentTitle != c.lastSavedTitle {
		t := sentTitle
		title = &t
	}

	c.inFlight = true
	c.status = StatusSaving
	c.lastError = ""
	c.lastSaveAt = time.Now()
	c.mu.Unlock()

	err := c.saver.SaveContent(context.Background(), fileID, sentContent, title)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		// File switched while the save was in flight; the result no
		// longer belongs to this session's state.
		return
	}
	c.inFlight = false

	if err != nil {
		c.status = StatusUnsaved
		c.lastError = err.Error()
		c.logger.Debug("autosave failed",
			zap.String("fileID", fileID),
			zap.Error(err),
		)
		return
	}

	c.lastSavedContent = sentContent
	c.lastSavedTitle = sentTitle

	if c.pendingContent == sentContent && c.pendingTitle == sentTitle {
		c.status = StatusSaved
	} else {
		// A newer edit superseded the values we just saved
		c.status = StatusUnsaved
		c.scheduleFlushLocked()
	}
}

// Reset synchronously rebinds the controller to a newly loaded file.
// Outstanding timers are cancelled and any in-flight save result for
// the previous file is discarded.
func (c *Controller) Reset(fileID, content, title string, canEdit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.debounce.Cancel()
	c.generation++
	c.inFlight = false

	c.fileID = fileID
	c.canEdit = canEdit
	c.pendingContent = content
	c.pendingTitle = title
	c.lastSavedContent = content
	c.lastSavedTitle = title
	c.status = StatusSaved
	c.lastError = ""
	c.edited = false
	c.lastSaveAt = time.Time{}
}

// Close tears the session down. If a genuine edit left unsaved changes
// and the session may write, exactly one best-effort send carries the
// latest pending state; the send is never awaited.
func (c *Controller) Close() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.debounce.Stop()
	c.sweepOnce.Do(func() { close(c.sweepStop) })

	shouldSend := c.sender != nil && c.canEdit && c.edited && c.dirtyLocked()
	payload := UnloadPayload{
		FileID:  c.fileID,
		Content: c.pendingContent,
		Title:   c.pendingTitle,
	}
	c.mu.Unlock()

	if shouldSend {
		c.sender.Send(payload)
	}
}

// Dirty reports whether pending state differs from the last saved state
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyLocked()
}

// ShouldBlockNavigation reports whether navigating away would lose edits
func (c *Controller) ShouldBlockNavigation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canEdit && c.dirtyLocked()
}

// Status returns the current save status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastError returns the retained error message, empty when none
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// State returns a snapshot of the session state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		FileID:           c.fileID,
		PendingContent:   c.pendingContent,
		PendingTitle:     c.pendingTitle,
		LastSavedContent: c.lastSavedContent,
		LastSavedTitle:   c.lastSavedTitle,
		Status:           c.status,
		LastError:        c.lastError,
		LastSaveTime:     c.lastSaveAt,
	}
}
