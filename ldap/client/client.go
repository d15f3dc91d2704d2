// Package client owns one TCP connection to a directory server: it pipelines
// outgoing requests, demultiplexes the inbound byte stream back into discrete
// responses, correlates each response to the request that caused it by
// message id, and resolves each request's future exactly once.
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hdt3213/goldap/interface/ldap"
	"github.com/hdt3213/goldap/ldap/codec"
	"github.com/hdt3213/goldap/ldap/protocol"
	"github.com/hdt3213/goldap/lib/logger"
)

// State is the lifecycle state of a Client
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosing
	StateClosed
)

var stateNames = []string{"disconnected", "connecting", "connected", "closing", "closed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

var (
	// ErrConnectionClosed resolves every future left outstanding by a forced
	// close or a fatal connection error
	ErrConnectionClosed = errors.New("ldap: connection closed")
	// ErrUnsolicitedResponse reports a response whose message id matches no
	// operation in flight
	ErrUnsolicitedResponse = errors.New("ldap: unsolicited response")
)

const chanSize = 256

// pendingOp pairs one outgoing request with its future. It lives in the
// outgoing queue until written, then in the in-flight table until its
// response is dispatched.
type pendingOp struct {
	id         int64
	msg        ldap.Message
	fut        *Future
	search     *protocol.SearchResult // set for search requests, filled by the receiver
	noReply    bool                   // resolve after the write; the server never answers
	enqueuedAt time.Time
}

// Client is a pipeline mode LDAP client over a single connection
type Client struct {
	addr  string
	state int32
	msgID int64

	pending  chan *pendingOp // wait to send
	inflight *inflightTable  // waiting response

	workMu  sync.Mutex
	workCnt int64         // unfinished requests (pending and in flight)
	idle    chan struct{} // non-nil while a graceful close waits for workCnt to reach zero

	connMu    sync.Mutex
	conn      net.Conn
	closeCh   chan struct{}
	closeOnce *sync.Once

	logger *zap.Logger

	errMu   sync.RWMutex
	onError func(error)
}

// MakeClient creates a disconnected client for the given address
func MakeClient(addr string) *Client {
	return &Client{
		addr:     addr,
		pending:  make(chan *pendingOp, chanSize),
		inflight: makeInflightTable(),
		logger:   logger.L(),
	}
}

// SetLogger replaces the client's logger; must be called before Connect
func (client *Client) SetLogger(l *zap.Logger) {
	if l != nil {
		client.logger = l
	}
}

// OnError registers the callback receiving transport and protocol errors.
// Without one, any such error is escalated: the connection is torn down and
// every outstanding future resolves with the error.
func (client *Client) OnError(fn func(error)) {
	client.errMu.Lock()
	client.onError = fn
	client.errMu.Unlock()
}

// State returns the current lifecycle state
func (client *Client) State() State {
	return State(atomic.LoadInt32(&client.state))
}

// Connect dials the server and starts the writer and reader goroutines.
// It is a no-op when already connected. A closed client may connect again;
// requests queued before connecting are sent once the connection is up.
func (client *Client) Connect() error {
	for {
		st := client.State()
		switch st {
		case StateConnected, StateConnecting:
			return nil
		case StateClosing:
			return fmt.Errorf("ldap: connect while closing")
		}
		if atomic.CompareAndSwapInt32(&client.state, int32(st), int32(StateConnecting)) {
			break
		}
	}
	conn, err := net.Dial("tcp", client.addr)
	if err != nil {
		atomic.StoreInt32(&client.state, int32(StateDisconnected))
		err = fmt.Errorf("ldap: connect %s: %w", client.addr, err)
		client.reportError(err)
		return err
	}
	closeCh := make(chan struct{})
	client.connMu.Lock()
	client.conn = conn
	client.closeCh = closeCh
	client.closeOnce = &sync.Once{}
	client.connMu.Unlock()
	if !atomic.CompareAndSwapInt32(&client.state, int32(StateConnecting), int32(StateConnected)) {
		// a Close ran while the dial was in progress; the client is already
		// closed and must not come back up on a live socket
		_ = conn.Close()
		return ErrConnectionClosed
	}
	client.logger.Info("ldap connection established", zap.String("addr", client.addr))
	go client.handleWrite(conn, closeCh)
	go client.handleRead(conn, closeCh)
	return nil
}

// Submit assigns the next message id to msg and queues it for transmission.
// The returned future resolves once a response is dispatched or the
// connection fails. Submissions stay accepted through a graceful close; on a
// closed client the future resolves immediately with ErrConnectionClosed.
func (client *Client) Submit(msg ldap.Message) *Future {
	op := &pendingOp{
		id:         atomic.AddInt64(&client.msgID, 1),
		msg:        msg,
		fut:        makeFuture(),
		enqueuedAt: time.Now(),
	}
	switch msg.Tag() {
	case protocol.TagSearchRequest:
		op.search = &protocol.SearchResult{}
	case protocol.TagUnbindRequest:
		op.noReply = true
	}
	if client.State() == StateClosed {
		op.fut.resolve(nil, ErrConnectionClosed)
		return op.fut
	}
	client.workAdd()
	client.pending <- op
	if client.State() == StateClosed {
		// shutdown may have drained the queue just before the enqueue landed;
		// drain again so the operation cannot be stranded with no writer left
		client.drainPending(ErrConnectionClosed)
	}
	return op.fut
}

// Close shuts the connection down. Immediate: the socket closes now and every
// queued or in-flight future resolves with ErrConnectionClosed. Graceful: the
// client keeps accepting and sending until every outstanding operation has
// resolved, then closes the socket; Close blocks until then.
func (client *Client) Close(immediate bool) {
	var prev State
	for {
		prev = client.State()
		if prev == StateClosed {
			return
		}
		if prev == StateClosing {
			break
		}
		if atomic.CompareAndSwapInt32(&client.state, int32(prev), int32(StateClosing)) {
			break
		}
	}
	// without a live connection nothing in flight can ever resolve, so a
	// graceful close would wait forever
	if immediate || (prev != StateConnected && prev != StateClosing) {
		client.shutdown(ErrConnectionClosed)
		return
	}
	<-client.awaitIdle()
	client.shutdown(nil)
}

/* ---- outstanding-operation accounting ---- */

func (client *Client) workAdd() {
	client.workMu.Lock()
	client.workCnt++
	client.workMu.Unlock()
}

// workDone retires one operation; at zero it releases a waiting graceful close
func (client *Client) workDone() {
	client.workMu.Lock()
	client.workCnt--
	if client.workCnt == 0 && client.idle != nil {
		close(client.idle)
		client.idle = nil
	}
	client.workMu.Unlock()
}

// awaitIdle returns a channel that is closed once no operation is queued or
// in flight. Unlike a WaitGroup it tolerates submissions racing the zero
// crossing; a straggler that slips past it is failed by the shutdown drain.
func (client *Client) awaitIdle() <-chan struct{} {
	client.workMu.Lock()
	defer client.workMu.Unlock()
	if client.workCnt == 0 {
		done := make(chan struct{})
		close(done)
		return done
	}
	if client.idle == nil {
		client.idle = make(chan struct{})
	}
	return client.idle
}

/* ---- transmitter ---- */

func (client *Client) handleWrite(conn net.Conn, closeCh chan struct{}) {
	for {
		select {
		case <-closeCh:
			return
		case op := <-client.pending:
			client.doSend(conn, closeCh, op)
		}
	}
}

func (client *Client) doSend(conn net.Conn, closeCh chan struct{}, op *pendingOp) {
	if op == nil {
		return
	}
	if client.State() == StateClosed {
		client.finish(op, nil, ErrConnectionClosed)
		return
	}
	data, err := codec.Encode(op.id, op.msg)
	if err != nil {
		client.finish(op, nil, err)
		return
	}
	if op.noReply {
		_, err = conn.Write(data)
		client.finish(op, nil, err)
		return
	}
	// register before writing so a fast response cannot race the table
	client.inflight.add(op)
	if _, err := conn.Write(data); err != nil {
		if taken, ok := client.inflight.take(op.id); ok {
			client.finish(taken, nil, fmt.Errorf("ldap: write: %w", err))
		}
		if client.State() != StateClosed {
			client.reportError(fmt.Errorf("ldap: write: %w", err))
		}
		return
	}
	if op.msg.Tag() == protocol.TagBindRequest {
		// the protocol forbids other operations while a bind exchange is
		// outstanding; hold the queue until its response is dispatched
		select {
		case <-op.fut.Done():
		case <-closeCh:
		}
	}
}

/* ---- receiver / demultiplexer ---- */

func (client *Client) handleRead(conn net.Conn, closeCh chan struct{}) {
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for len(buf) > 0 {
				id, resp, consumed, derr := codec.DecodeNext(buf)
				if errors.Is(derr, codec.ErrIncompleteMessage) {
					// keep the partial tail until more bytes arrive
					break
				}
				if derr != nil {
					client.fatal(derr)
					return
				}
				buf = buf[consumed:]
				client.dispatch(id, resp)
			}
		}
		if err != nil {
			select {
			case <-closeCh:
				// shutdown already ran; the socket going away is expected
				return
			default:
			}
			// any other read error is fatal, including one during a graceful
			// close: the in-flight responses will never arrive, so their
			// futures must fail now or the close supervisor waits forever
			client.fatal(fmt.Errorf("ldap: read: %w", err))
			return
		}
	}
}

func (client *Client) dispatch(messageID int64, resp ldap.Response) {
	if messageID == 0 {
		// message id zero is reserved for server notices such as the
		// notice of disconnection
		if notice, ok := resp.(*protocol.ExtendedResponse); ok {
			client.reportError(fmt.Errorf("ldap: server notice %q: %s", notice.Name, notice.Code))
			return
		}
	}
	switch r := resp.(type) {
	case *protocol.SearchResultEntry:
		op, ok := client.inflight.peek(messageID)
		if !ok || op.search == nil {
			client.unsolicited(messageID, resp)
			return
		}
		op.search.Entries = append(op.search.Entries, r.Entry)
	case *protocol.SearchResultDone:
		op, ok := client.inflight.take(messageID)
		if !ok {
			client.unsolicited(messageID, resp)
			return
		}
		if op.search == nil {
			client.finish(op, resp, nil)
			return
		}
		op.search.Code = r.Code
		op.search.Diagnostic = r.Diagnostic
		client.finish(op, op.search, nil)
	default:
		op, ok := client.inflight.take(messageID)
		if !ok {
			client.unsolicited(messageID, resp)
			return
		}
		client.finish(op, resp, nil)
	}
}

/* ---- error propagation and teardown ---- */

func (client *Client) finish(op *pendingOp, resp ldap.Response, err error) {
	op.fut.resolve(resp, err)
	client.workDone()
}

func (client *Client) unsolicited(messageID int64, resp ldap.Response) {
	err := fmt.Errorf("%w: message id %d, tag %d", ErrUnsolicitedResponse, messageID, resp.Tag())
	if client.hasErrorHandler() {
		client.reportError(err)
		return
	}
	client.fatal(err)
}

func (client *Client) hasErrorHandler() bool {
	client.errMu.RLock()
	defer client.errMu.RUnlock()
	return client.onError != nil
}

func (client *Client) reportError(err error) {
	client.errMu.RLock()
	fn := client.onError
	client.errMu.RUnlock()
	if fn != nil {
		fn(err)
		return
	}
	client.logger.Error("ldap connection error", zap.Error(err))
}

// fatal reports err, tears the connection down and resolves every
// outstanding future with err
func (client *Client) fatal(err error) {
	if client.State() == StateClosed {
		return
	}
	client.reportError(err)
	client.shutdown(err)
}

func (client *Client) shutdown(failErr error) {
	atomic.StoreInt32(&client.state, int32(StateClosed))
	client.connMu.Lock()
	conn, once := client.conn, client.closeOnce
	closeCh := client.closeCh
	client.connMu.Unlock()
	if once != nil {
		once.Do(func() {
			close(closeCh)
			_ = conn.Close()
			client.logger.Info("ldap connection closed", zap.String("addr", client.addr))
		})
	}
	cause := failErr
	if cause == nil {
		cause = ErrConnectionClosed
	}
	// on a graceful close both queues are already empty; anything found here
	// is a straggler that raced the close and can never be answered. In-flight
	// futures fail in submission order.
	for _, op := range client.inflight.drain() {
		client.finish(op, nil, cause)
	}
	client.drainPending(cause)
}

func (client *Client) drainPending(err error) {
	for {
		select {
		case op := <-client.pending:
			client.finish(op, nil, err)
		default:
			return
		}
	}
}
