// Package notify delivers loss notification beacons in the background.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smallnest/chanx"
)

const (
	DefaultWorkers       = 4
	DefaultTimeout       = 2 * time.Second
	defaultQueueCapacity = 64
)

// Config controls the dispatcher worker pool.
type Config struct {
	// Workers is the number of concurrent beacon requests.
	Workers int
	// Timeout bounds a single beacon request.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Stats counts beacon outcomes.
type Stats struct {
	Queued    int64
	Delivered int64
	Failed    int64
	Dropped   int64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client used for beacons.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) { d.client = client }
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// Dispatcher fires HTTP GET beacons without waiting for them.
// Notify never blocks the caller and never reports delivery errors;
// failures are logged and dropped. There is no retry.
type Dispatcher struct {
	cfg    Config
	client *http.Client
	logger logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	queue  *chanx.UnboundedChan[string]
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	queued    atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide Dispatcher, started with the default Config
// on first use. It is never closed.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = New(Config{})
	})
	return defaultDispatcher
}

// New creates a Dispatcher and starts its workers.
func New(cfg Config, opts ...Option) *Dispatcher {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		cfg:    cfg,
		client: http.DefaultClient,
		logger: logrus.StandardLogger(),
		ctx:    ctx,
		cancel: cancel,
		queue:  chanx.NewUnboundedChan[string](ctx, defaultQueueCapacity),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithField("component", "loss_dispatcher")

	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.logger.WithField("workers", cfg.Workers).Debug("Loss dispatcher started")

	return d
}

// Notify queues a beacon for url. Beacons queued after Close are dropped.
func (d *Dispatcher) Notify(url string) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		d.logger.WithField("url", url).Warn("Dispatcher closed, dropping loss notification")
		return
	}

	select {
	case d.queue.In <- url:
		d.queued.Add(1)
	case <-d.ctx.Done():
		d.dropped.Add(1)
	}
}

// Close stops accepting beacons and waits for queued ones to finish.
// If ctx expires first, in-flight requests are cancelled and the rest dropped.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue.In)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("close loss dispatcher: %w", ctx.Err())
	}

	d.cancel()
	<-done

	stats := d.Stats()
	d.logger.WithFields(logrus.Fields{
		"queued":    stats.Queued,
		"delivered": stats.Delivered,
		"failed":    stats.Failed,
		"dropped":   stats.Dropped,
	}).Info("Loss dispatcher closed")

	return err
}

// Stats returns a snapshot of the beacon counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Queued:    d.queued.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for url := range d.queue.Out {
		if d.ctx.Err() != nil {
			d.dropped.Add(1)
			continue
		}
		d.send(url)
	}
}

func (d *Dispatcher) send(url string) {
	defer func() {
		if r := recover(); r != nil {
			d.failed.Add(1)
			d.logger.WithField("url", url).Errorf("Panic recovered while sending loss notification: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.failed.Add(1)
		d.logger.WithError(err).WithField("url", url).Warn("Invalid loss notification URL")
		return
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.failed.Add(1)
		d.logger.WithError(err).WithField("url", url).Warn("Loss notification failed")
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			d.logger.WithError(err).Debug("Failed to close loss notification response body")
		}
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.failed.Add(1)
		d.logger.WithFields(logrus.Fields{
			"url":    url,
			"status": resp.StatusCode,
		}).Warn("Loss notification rejected")
		return
	}

	d.delivered.Add(1)
	d.logger.WithField("url", url).Debug("Loss notification delivered")
}
