package contactform

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"
)

// DefaultSuccessTimeout is how long the success notice stays up after a submission.
const DefaultSuccessTimeout = 5 * time.Second

var (
	ErrSubmitInProgress = errors.New("contactform: submission already in progress")
	ErrUnknownField     = errors.New("contactform: unknown field")
	ErrClosed           = errors.New("contactform: form is closed")
)

// ValidationError is returned by Form.Submit when the fields do not pass Validate.
// The submitter is not called in that case.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contactform: %d invalid field(s)", len(e.Result))
}

// State is the lifecycle position of a Form.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a copy of the form's observable state.
type Snapshot struct {
	Fields        Fields
	Errors        ValidationResult
	State         State
	IsSubmitting  bool
	SubmitSuccess bool
}

// Timer is the part of *time.Timer the form needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

type Option func(*Form)

// WithSuccessTimeout changes how long SubmitSuccess stays true.
func WithSuccessTimeout(d time.Duration) Option {
	return func(f *Form) { f.successTimeout = d }
}

// WithAfterFunc replaces the timer source, mostly for tests.
func WithAfterFunc(after AfterFunc) Option {
	return func(f *Form) { f.afterFunc = after }
}

// WithOnChange registers a callback invoked after every state change, outside
// the form's lock. It may run on the timer goroutine.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Form) { f.onChange = fn }
}

// Form owns one contact form instance from mount (New) to unmount (Close).
// IsSubmitting and SubmitSuccess are never both true.
type Form struct {
	mu        sync.Mutex
	submitter Submitter

	fields  Fields
	errors  ValidationResult
	state   State
	success bool
	closed  bool

	timer          Timer
	timerGen       uint64
	successTimeout time.Duration
	afterFunc      AfterFunc
	onChange       func(Snapshot)
}

// New mounts a form with empty fields in StateIdle.
func New(submitter Submitter, opts ...Option) *Form {
	f := &Form{
		submitter:      submitter,
		errors:         ValidationResult{},
		state:          StateIdle,
		successTimeout: DefaultSuccessTimeout,
		afterFunc: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one field and clears that field's error. Input is rejected
// while a submission is in flight.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	switch field {
	case FieldName:
		f.fields.Name = value
	case FieldEmail:
		f.fields.Email = value
	case FieldProjectType:
		f.fields.ProjectType = value
	case FieldMessage:
		f.fields.Message = value
	default:
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(f.errors, field)
	f.state = StateEditing

	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)
	return nil
}

// Submit validates and, when valid, hands the fields to the submitter exactly
// once. It returns a *ValidationError, ErrSubmitInProgress, the submitter's
// error, or nil on success.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	result := Validate(f.fields)
	if !result.Valid() {
		f.errors = result
		f.state = StateEditing
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.notify(snap)
		return &ValidationError{Result: maps.Clone(result)}
	}

	f.errors = ValidationResult{}
	f.stopTimerLocked()
	f.success = false
	f.state = StateSubmitting
	fields := f.fields
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	err := f.submitter.Submit(ctx, fields)

	f.mu.Lock()
	if err != nil {
		f.errors[FieldSubmit] = SubmitFailedMessage
		f.state = StateError
	} else {
		f.fields = Fields{}
		f.state = StateSuccess
		f.success = true
		if !f.closed {
			f.startTimerLocked()
		}
	}
	snap = f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)
	return err
}

// Close unmounts the form: the success timer is released and further edits
// or submissions fail with ErrClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopTimerLocked()
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) Errors() ValidationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateSubmitting
}

func (f *Form) SubmitSuccess() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Fields:        f.fields,
		Errors:        maps.Clone(f.errors),
		State:         f.state,
		IsSubmitting:  f.state == StateSubmitting,
		SubmitSuccess: f.success,
	}
}

func (f *Form) startTimerLocked() {
	f.timerGen++
	gen := f.timerGen
	f.timer = f.afterFunc(f.successTimeout, func() { f.expire(gen) })
}

func (f *Form) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	// A callback that already fired but has not taken the lock yet sees a
	// stale generation and does nothing.
	f.timerGen++
}

func (f *Form) expire(gen uint64) {
	f.mu.Lock()
	if f.closed || gen != f.timerGen {
		f.mu.Unlock()
		return
	}
	f.timer = nil
	f.success = false
	if f.state == StateSuccess {
		f.state = StateIdle
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)
}

func (f *Form) notify(s Snapshot) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
