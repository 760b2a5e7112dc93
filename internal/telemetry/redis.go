package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"binPack/internal/opt"
)

const (
	publishTimeout = 2 * time.Second
	queueSize      = 1024
)

// Message is the JSON payload published for every trace record.
type Message struct {
	RunID  string          `json:"run_id"`
	Algo   string          `json:"algo"`
	Record opt.TraceRecord `json:"record"`
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Close() error
}

// RedisPublisher streams trace records over Redis pub/sub. Records are queued
// and published from a background goroutine so the search never waits on the
// network; when the queue is full records are dropped and counted.
type RedisPublisher struct {
	client  publisher
	channel string
	log     *zap.Logger

	queue     chan Message
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64
}

func NewRedisPublisher(url, channel string, log *zap.Logger) (*RedisPublisher, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return newRedisPublisher(redis.NewClient(o), channel, log, queueSize), nil
}

func newRedisPublisher(client publisher, channel string, log *zap.Logger, size int) *RedisPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &RedisPublisher{
		client:  client,
		channel: channel,
		log:     log,
		queue:   make(chan Message, size),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *RedisPublisher) loop() {
	defer close(p.done)
	for msg := range p.queue {
		data, err := json.Marshal(msg)
		if err != nil {
			p.log.Warn("encode trace record", zap.Error(err))
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err = p.client.Publish(ctx, p.channel, data).Err()
		cancel()
		if err != nil {
			p.log.Warn("publish trace record", zap.String("channel", p.channel), zap.Error(err))
		}
	}
}

// Observer returns a trace observer tagging records with the run id and algorithm.
func (p *RedisPublisher) Observer(runID, algo string) opt.Observer {
	return func(rec opt.TraceRecord) {
		select {
		case p.queue <- Message{RunID: runID, Algo: algo, Record: rec}:
		default:
			p.dropped.Add(1)
		}
	}
}

func (p *RedisPublisher) Dropped() int64 { return p.dropped.Load() }

// Close drains the queue and closes the client. Observers must not be called afterwards.
func (p *RedisPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.queue)
		<-p.done
		if n := p.dropped.Load(); n > 0 {
			p.log.Warn("trace records dropped", zap.Int64("count", n))
		}
		err = p.client.Close()
	})
	return err
}
