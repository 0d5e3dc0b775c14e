// Package dispatch serializes all outbound sends through one worker
// goroutine. Producers (webhook replies, reminder broadcasts) enqueue;
// the worker applies the rate limit and talks to the chat gateway, so two
// producers can never race on the limiter state.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/model"
)

// Client is the outbound send capability of the chat provider.
type Client interface {
	SendText(ctx context.Context, to, body string) (messageID string, err error)
	SendTemplate(ctx context.Context, to, templateID string, variables []string) (messageID string, err error)
}

// Result is the outcome of one send attempt.
type Result struct {
	Target    string
	MessageID string
	Err       error
}

var errStopped = errors.New("dispatcher stopped")

type job struct {
	msg model.OutboundMessage
	// result is nil for fire-and-forget sends.
	result chan Result
}

type Dispatcher struct {
	client  Client
	limiter *Limiter

	jobs chan job

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func New(client Client, limiter *Limiter) *Dispatcher {
	return &Dispatcher{
		client:  client,
		limiter: limiter,
		jobs:    make(chan job, 64),
	}
}

func (d *Dispatcher) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	go d.work(ctx)
	return true
}

func (d *Dispatcher) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return false
	}

	d.cancel()
	<-d.done
	d.running = false
	return true
}

// stopChan snapshots the current worker's termination signal, or nil when
// the dispatcher is not running. Producers select against it so a Stop
// racing an enqueue can never leave a caller blocked on a result that no
// worker will produce.
func (d *Dispatcher) stopChan() chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return nil
	}
	return d.done
}

// Enqueue schedules a fire-and-forget send. Used for webhook replies: the
// inbound transport has already been acknowledged, so a send failure is
// logged by the worker and invisible to the sender. A full queue or a
// stopped dispatcher drops the message with a log line rather than
// blocking the webhook handler.
func (d *Dispatcher) Enqueue(msg model.OutboundMessage) {
	msg.EnqueuedAt = time.Now()
	if d.stopChan() == nil {
		log.Error().Str("target", msg.TargetPhone).Msg("dispatcher stopped, dropping outbound message")
		return
	}
	select {
	case d.jobs <- job{msg: msg}:
	default:
		log.Error().Str("target", msg.TargetPhone).Msg("dispatch queue full, dropping outbound message")
	}
}

// Send schedules one message and waits for its outcome.
func (d *Dispatcher) Send(msg model.OutboundMessage) Result {
	msg.EnqueuedAt = time.Now()
	stop := d.stopChan()
	if stop == nil {
		return Result{Target: msg.TargetPhone, Err: errStopped}
	}

	res := make(chan Result, 1)
	select {
	case d.jobs <- job{msg: msg, result: res}:
	case <-stop:
		return Result{Target: msg.TargetPhone, Err: errStopped}
	}
	return await(res, stop, msg.TargetPhone)
}

// SendBatch delivers to every recipient strictly sequentially in input
// order and reports per-recipient outcomes. Individual failures never
// abort the rest of the batch.
func (d *Dispatcher) SendBatch(msgs []model.OutboundMessage) []Result {
	results := make([]Result, len(msgs))

	stop := d.stopChan()
	channels := make([]chan Result, len(msgs))
	for i, msg := range msgs {
		if stop == nil {
			results[i] = Result{Target: msg.TargetPhone, Err: errStopped}
			continue
		}
		msg.EnqueuedAt = time.Now()
		ch := make(chan Result, 1)
		select {
		case d.jobs <- job{msg: msg, result: ch}:
			channels[i] = ch
		case <-stop:
			stop = nil
			results[i] = Result{Target: msg.TargetPhone, Err: errStopped}
		}
	}

	for i, ch := range channels {
		if ch == nil {
			continue
		}
		results[i] = await(ch, stop, msgs[i].TargetPhone)
	}
	return results
}

// await waits for a job's outcome, bailing out with errStopped when the
// worker shuts down first. A result that raced the shutdown still wins.
func await(res chan Result, stop chan struct{}, target string) Result {
	if stop == nil {
		stop = closedChan
	}
	select {
	case r := <-res:
		return r
	case <-stop:
		select {
		case r := <-res:
			return r
		default:
			return Result{Target: target, Err: errStopped}
		}
	}
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (d *Dispatcher) work(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case j := <-d.jobs:
			d.attempt(ctx, j)
		}
	}
}

// attempt performs one rate-limited send. The limiter is stamped after the
// attempt returns, so the next send measures its interval from the end of
// this one's slot regardless of outcome.
func (d *Dispatcher) attempt(ctx context.Context, j job) {
	d.limiter.Wait()

	var id string
	var err error
	if j.msg.Templated() {
		id, err = d.client.SendTemplate(ctx, j.msg.TargetPhone, j.msg.TemplateID, j.msg.Variables)
	} else {
		id, err = d.client.SendText(ctx, j.msg.TargetPhone, j.msg.Body)
	}
	d.limiter.Stamp()

	if err != nil {
		log.Error().Err(err).Str("target", j.msg.TargetPhone).Msg("outbound send failed")
	} else {
		log.Info().Str("target", j.msg.TargetPhone).Str("message_id", id).Msg("outbound send delivered")
	}

	if j.result != nil {
		j.result <- Result{Target: j.msg.TargetPhone, MessageID: id, Err: err}
	}
}

// drain fails any callers still waiting when the worker stops.
func (d *Dispatcher) drain() {
	for {
		select {
		case j := <-d.jobs:
			if j.result != nil {
				j.result <- Result{Target: j.msg.TargetPhone, Err: errStopped}
			}
		default:
			return
		}
	}
}
