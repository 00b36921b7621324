package core

import (
	"sync"

	"github.com/spaghettifunk/kiki/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * ke := context.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * ke := context.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * se := context.Data.(*SystemEvent)
	 */
	EVENT_CODE_RESIZED EventCode = 0x08

	// An asset file changed on disk.
	/* Context usage:
	 * ae := context.Data.(*AssetEvent)
	 */
	EVENT_CODE_ASSET_CHANGED EventCode = 0x10

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// Posted events waiting for the main thread. Further posts are dropped.
const MAX_PENDING_EVENTS = 256

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
}

type FnOnEvent func(context EventContext)

type eventCodeEntry struct {
	callbacks []FnOnEvent
}

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry

	// Events posted from other goroutines, dispatched on the main thread.
	pendingMutex sync.Mutex
	pending      *containers.RingQueue[EventContext]
}

var eventMutex sync.Mutex
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		pending: containers.NewRingQueue[EventContext](MAX_PENDING_EVENTS),
	}
	return true
}

func EventSystemShutdown() error {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if eventState == nil {
		return ErrNotInitialized
	}
	eventState = nil
	return nil
}

// EventRegister adds onEvent to the listeners of code.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	entry := &eventState.registered[code]
	entry.callbacks = append(entry.callbacks, onEvent)
	return true
}

// EventFire dispatches context to every listener of its code right away, on
// the calling goroutine. Returns false if nobody is listening.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	callbacks := eventState.registered[context.Type].callbacks
	if len(callbacks) == 0 {
		return false
	}
	for _, cb := range callbacks {
		cb(context)
	}
	return true
}

// EventPost queues context for the next EventDispatchPending call. Safe to
// call from any goroutine. Returns false when the queue is full.
func EventPost(context EventContext) bool {
	eventMutex.Lock()
	state := eventState
	eventMutex.Unlock()
	if state == nil {
		return false
	}
	state.pendingMutex.Lock()
	err := state.pending.Enqueue(context)
	state.pendingMutex.Unlock()
	if err != nil {
		LogWarn("dropping event 0x%02x: %s", context.Type, err)
		return false
	}
	return true
}

// EventDispatchPending fires every queued event in posting order and
// returns how many were dispatched. Must run on the main thread.
func EventDispatchPending() int {
	if eventState == nil {
		return 0
	}
	eventState.pendingMutex.Lock()
	pending := make([]EventContext, 0, eventState.pending.Len())
	for !eventState.pending.IsEmpty() {
		context, _ := eventState.pending.Dequeue()
		pending = append(pending, context)
	}
	eventState.pendingMutex.Unlock()

	for _, context := range pending {
		EventFire(context)
	}
	return len(pending)
}
