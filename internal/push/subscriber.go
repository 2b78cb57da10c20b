package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rookgm/orderfeed/internal/feed"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	sse "github.com/tmaxmax/go-sse"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// State is subscription lifecycle state
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// named events sent by backend
const (
	eventConnected = "connected"
	eventPing      = "ping"
	eventMessage   = "message"
)

// OrderCreatedType is message type that carries a new order
const OrderCreatedType = "order_created"

const defaultBuffer = 64

// TokenSource provides backend admin token
type TokenSource interface {
	Token() (string, error)
}

// Recorder observes subscriber activity
type Recorder interface {
	EventReceived(name string)
	ParseFailed()
	Reconnecting()
}

type nopRecorder struct{}

func (nopRecorder) EventReceived(string) {}
func (nopRecorder) ParseFailed()         {}
func (nopRecorder) Reconnecting()        {}

// Message is order_created push event
type Message struct {
	EventID    string
	Order      models.Order
	ReceivedAt time.Time
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Options configures Subscriber
type Options struct {
	// URL is push endpoint
	URL string
	// Channel is sent as "channel" query parameter
	Channel string
	Tokens  TokenSource
	// Policy defaults to FixedPolicy with 3s interval
	Policy ReconnectPolicy
	// Client defaults to http.Client without timeout
	Client *http.Client
	// Buffer is capacity of messages channel
	Buffer   int
	Recorder Recorder
	// OnState is called on every state transition
	OnState func(State)
	// OnDrop is called with models.ErrConnectionDropped wrapping the cause
	OnDrop func(error)
}

// Subscriber keeps a single server push connection open and emits order_created messages
type Subscriber struct {
	opts      Options
	sessionID string

	state    atomic.Int32
	messages chan Message
	done     chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc

	// owned by run goroutine
	lastEventID string
	serverRetry time.Duration
}

// NewSubscriber creates new Subscriber instance in Disconnected state
func NewSubscriber(opts Options) *Subscriber {
	if opts.Policy == nil {
		opts.Policy = FixedPolicy{Interval: 3 * time.Second}
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	return &Subscriber{
		opts:      opts,
		sessionID: uuid.NewString(),
		messages:  make(chan Message, opts.Buffer),
		done:      make(chan struct{}),
	}
}

// State returns current state
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

// Start opens subscription and returns channel of messages in arrival order.
// The channel is closed after Close or ctx cancellation. Repeated calls return the same channel.
func (s *Subscriber) Start(ctx context.Context) <-chan Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.closed {
		return s.messages
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.setState(StateConnecting)
	go s.run(ctx)

	return s.messages
}

// Close tears subscription down and waits until connection is released
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started := s.started
	s.mu.Unlock()

	prev := State(s.state.Swap(int32(StateClosed)))

	if started {
		s.cancel()
		<-s.done
	} else {
		close(s.messages)
		close(s.done)
	}

	logger.Log.Info("push subscription closed", zap.String("session", s.sessionID))
	if prev != StateClosed && s.opts.OnState != nil {
		s.opts.OnState(StateClosed)
	}
}

// Done is closed once the subscription has released its connection
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

func (s *Subscriber) setState(st State) {
	for {
		cur := State(s.state.Load())
		if cur == StateClosed || cur == st {
			return
		}
		if s.state.CompareAndSwap(int32(cur), int32(st)) {
			break
		}
	}

	logger.Log.Debug("push subscription state", zap.String("state", st.String()))
	if s.opts.OnState != nil {
		s.opts.OnState(st)
	}
}

func (s *Subscriber) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.messages)
	// parent ctx cancellation ends the subscription as Close does
	defer s.setState(StateClosed)

	attempt := 0
	for {
		established, err := s.connect(ctx)
		if ctx.Err() != nil {
			return
		}
		if established {
			attempt = 0
		}
		attempt++

		drop := fmt.Errorf("%w: %v", models.ErrConnectionDropped, err)
		logger.Log.Warn("push connection lost", zap.Error(drop), zap.Int("attempt", attempt))
		if s.opts.OnDrop != nil {
			s.opts.OnDrop(drop)
		}
		s.opts.Recorder.Reconnecting()
		s.setState(StateConnecting)

		timer := time.NewTimer(s.opts.Policy.Delay(attempt, s.serverRetry))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// connect holds one connection until it fails. It reports whether the stream was opened.
func (s *Subscriber) connect(ctx context.Context) (bool, error) {
	token, err := s.opts.Tokens.Token()
	if err != nil {
		return false, err
	}

	u, err := s.endpoint()
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Client-Id", s.sessionID)
	if s.lastEventID != "" {
		req.Header.Set("Last-Event-ID", s.lastEventID)
	}

	resp, err := s.opts.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	s.setState(StateConnected)
	logger.Log.Info("push connection established", zap.String("url", u), zap.String("session", s.sessionID))

	tap := &retryTap{r: resp.Body}
	defer func() {
		if tap.retry > 0 {
			s.serverRetry = tap.retry
		}
	}()

	for ev, err := range sse.Read(tap, &sse.ReadConfig{MaxEventSize: maxEventSize}) {
		if err != nil {
			return true, err
		}
		if ev.LastEventID != "" {
			s.lastEventID = ev.LastEventID
		}
		s.handle(ctx, ev)
	}

	return true, io.EOF
}

func (s *Subscriber) endpoint() (string, error) {
	u, err := url.Parse(s.opts.URL)
	if err != nil {
		return "", err
	}
	if s.opts.Channel != "" {
		q := u.Query()
		q.Set("channel", s.opts.Channel)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (s *Subscriber) handle(ctx context.Context, ev sse.Event) {
	name := ev.Type
	if name == "" {
		name = eventMessage
	}
	s.opts.Recorder.EventReceived(name)

	switch name {
	case eventConnected:
		logger.Log.Info("push channel connected", zap.String("data", ev.Data))
	case eventPing:
	case eventMessage:
		s.handleMessage(ctx, ev)
	default:
		logger.Log.Debug("push event ignored", zap.String("event", name))
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, ev sse.Event) {
	if ev.Data == "" {
		// id-only block
		return
	}

	order, err := decodeOrderCreated([]byte(ev.Data))
	if err != nil {
		if errors.Is(err, errIgnoredType) {
			logger.Log.Debug("push message ignored", zap.Error(err))
			return
		}
		s.opts.Recorder.ParseFailed()
		logger.Log.Warn("push message dropped", zap.Error(err), zap.String("event_id", ev.LastEventID))
		return
	}

	msg := Message{EventID: ev.LastEventID, Order: order, ReceivedAt: time.Now()}
	select {
	case s.messages <- msg:
	case <-ctx.Done():
	}
}

var errIgnoredType = errors.New("message type ignored")

func decodeOrderCreated(data []byte) (models.Order, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	if env.Type != OrderCreatedType {
		return models.Order{}, fmt.Errorf("%w: %q", errIgnoredType, env.Type)
	}

	order, err := feed.Normalize(env.Payload)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", models.ErrParse, err)
	}
	return order, nil
}
