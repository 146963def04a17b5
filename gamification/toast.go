package gamification

import (
	"sync"
	"time"

	"apex-client/api"
)

const (
	DefaultToastDuration = 5 * time.Second
	DefaultExitDelay     = 300 * time.Millisecond
)

// Toast is an unlock notification that dismisses itself after a duration.
// Dismissal runs onHide, then onDismiss after the exit delay, at most once.
type Toast struct {
	Achievement api.Achievement

	duration  time.Duration
	exitDelay time.Duration
	onHide    func()
	onDismiss func()

	mu        sync.Mutex
	timer     *time.Timer
	exit      *time.Timer
	dismissed bool
	stopped   bool
}

// NewToast creates a toast; call Start to schedule auto-dismissal
func NewToast(a api.Achievement, duration, exitDelay time.Duration, onHide, onDismiss func()) *Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	if exitDelay < 0 {
		exitDelay = DefaultExitDelay
	}
	return &Toast{
		Achievement: a,
		duration:    duration,
		exitDelay:   exitDelay,
		onHide:      onHide,
		onDismiss:   onDismiss,
	}
}

// Start schedules the automatic dismissal
func (t *Toast) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.dismissed || t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.duration, t.Dismiss)
}

// Dismiss hides the toast and schedules the removal callback
func (t *Toast) Dismiss() {
	t.mu.Lock()
	if t.stopped || t.dismissed {
		t.mu.Unlock()
		return
	}
	t.dismissed = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.exit = time.AfterFunc(t.exitDelay, t.finish)
	t.mu.Unlock()

	if t.onHide != nil {
		t.onHide()
	}
}

func (t *Toast) finish() {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if !stopped && t.onDismiss != nil {
		t.onDismiss()
	}
}

// Stop cancels any pending callbacks without dismissing
func (t *Toast) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.exit != nil {
		t.exit.Stop()
	}
}

// ToastQueue shows unlock toasts one at a time
type ToastQueue struct {
	duration  time.Duration
	exitDelay time.Duration

	// OnShow displays a toast; OnHide removes it from view
	OnShow func(t *Toast)
	OnHide func(t *Toast)

	mu      sync.Mutex
	pending []api.Achievement
	active  *Toast
}

// NewToastQueue creates an empty queue
func NewToastQueue(duration, exitDelay time.Duration) *ToastQueue {
	return &ToastQueue{duration: duration, exitDelay: exitDelay}
}

// SetTiming changes the duration and exit delay of toasts shown from now on
func (q *ToastQueue) SetTiming(duration, exitDelay time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.duration = duration
	q.exitDelay = exitDelay
}

// Push enqueues achievements and shows the next toast if none is active
func (q *ToastQueue) Push(list ...api.Achievement) {
	q.mu.Lock()
	q.pending = append(q.pending, list...)
	q.mu.Unlock()
	q.next()
}

// Active returns the toast currently shown, if any
func (q *ToastQueue) Active() *Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Len is the number of toasts waiting behind the active one
func (q *ToastQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stop cancels the active toast and drops the queue
func (q *ToastQueue) Stop() {
	q.mu.Lock()
	active := q.active
	q.active = nil
	q.pending = nil
	q.mu.Unlock()
	if active != nil {
		active.Stop()
	}
}

func (q *ToastQueue) next() {
	q.mu.Lock()
	if q.active != nil || len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	a := q.pending[0]
	q.pending = q.pending[1:]

	var toast *Toast
	toast = NewToast(a, q.duration, q.exitDelay,
		func() {
			if q.OnHide != nil {
				q.OnHide(toast)
			}
		},
		func() {
			q.mu.Lock()
			if q.active == toast {
				q.active = nil
			}
			q.mu.Unlock()
			q.next()
		},
	)
	q.active = toast
	q.mu.Unlock()

	if q.OnShow != nil {
		q.OnShow(toast)
	}
	toast.Start()
}
