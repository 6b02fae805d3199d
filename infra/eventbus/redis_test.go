package eventbus

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisBus(t *testing.T) (*RedisEventBus, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	bus := NewWithRedis(client, "test:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(bus.Close)
	return bus, client
}

func TestStreamNames(t *testing.T) {
	assert.Equal(t, "events:loan:paidoff", streamNameFor("", events.TypeLoanPaidOff))
	assert.Equal(t, "x:dlq:commission:accrued", dlqStreamName("x:", events.TypeCommissionAccrued))
	assert.Equal(t, "group:plain", groupNameFor("", "Plain"))
}

func TestRedisBus_EmitAppendsToStream(t *testing.T) {
	bus, client := setupRedisBus(t)
	ctx := context.Background()

	evt := events.CommissionAccrued{
		CommissionID:   uuid.New(),
		CollaboratorID: uuid.New(),
		TransactionID:  uuid.New(),
		Amount:         decimal.RequireFromString("10.00"),
	}
	require.NoError(t, bus.Emit(ctx, evt))

	msgs, err := client.XRange(ctx, streamNameFor("test:", events.TypeCommissionAccrued), "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Values["event"], events.TypeCommissionAccrued)
}

func TestRedisBus_PollDecodesAndAcks(t *testing.T) {
	bus, client := setupRedisBus(t)
	ctx := context.Background()
	require.NoError(t, bus.ensureGroup(ctx, events.TypeLoanPaidOff))

	loanID := uuid.New()
	require.NoError(t, bus.Emit(ctx, events.LoanPaidOff{LoanID: loanID, CustomerID: uuid.New()}))

	var got *events.LoanPaidOff
	n, err := bus.poll(ctx, events.TypeLoanPaidOff, "c1", func(_ context.Context, e events.Event) error {
		got = e.(*events.LoanPaidOff)
		return nil
	}, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotNil(t, got)
	assert.Equal(t, loanID, got.LoanID)

	pending, err := client.XPending(ctx, streamNameFor("test:", events.TypeLoanPaidOff),
		groupNameFor("test:", events.TypeLoanPaidOff)).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)

	n, err = bus.poll(ctx, events.TypeLoanPaidOff, "c1", nil, -1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisBus_FailedHandlerGoesToDLQ(t *testing.T) {
	bus, client := setupRedisBus(t)
	ctx := context.Background()
	require.NoError(t, bus.ensureGroup(ctx, events.TypeLoanFunded))
	require.NoError(t, bus.ensureGroup(ctx, events.TypeLoanFunded))

	require.NoError(t, bus.Emit(ctx, events.LoanFunded{LoanID: uuid.New(), OccurredAt: time.Now()}))
	_, err := bus.poll(ctx, events.TypeLoanFunded, "c1", func(context.Context, events.Event) error {
		return errors.New("settlement down")
	}, -1)
	require.NoError(t, err)

	n, err := client.XLen(ctx, dlqStreamName("test:", events.TypeLoanFunded)).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

func TestRedisBus_CloseInterruptsRetryDelay(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	logs := &lockedBuffer{}
	bus := NewWithRedis(client, "test:", slog.New(slog.NewTextHandler(logs, nil)))
	bus.block = 10 * time.Millisecond
	bus.retryDelay = time.Hour

	bus.Register(events.TypeLoanPaidOff, func(context.Context, events.Event) error { return nil })
	mr.Close()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "error reading from stream")
	}, 5*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		bus.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on the retry delay")
	}
}
