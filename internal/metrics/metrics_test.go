package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	Nop
	fallbacks []string
}

func (c *countingRecorder) RecordFallback(_ context.Context, feature, reason string) {
	c.fallbacks = append(c.fallbacks, feature+":"+reason)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingRecorder{}, &countingRecorder{}
	multi := NewMulti(a, nil, b)

	require.Len(t, multi, 2)
	multi.RecordFallback(context.Background(), "date", "rate_limit")
	multi.RecordAPIRequest(context.Background(), "/", 200, time.Millisecond)

	assert.Equal(t, []string{"date:rate_limit"}, a.fallbacks)
	assert.Equal(t, []string{"date:rate_limit"}, b.fallbacks)
}

func TestSentryMetricsWithoutHub(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordAPIRequest(ctx, "/dates/generate", 200, time.Second)
		m.RecordGeneration(ctx, "letter", time.Second, false)
		m.RecordTokenUsage(ctx, "llama-3.3-70b-versatile", 10, 7, 3)
		m.RecordFallback(ctx, "date", "transport")
	})
}

type fakeCloudWatch struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range params.MetricData {
		f.names = append(f.names, aws.ToString(d.MetricName))
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func (f *fakeCloudWatch) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...)
}

func TestCloudWatchDisabledIsNoop(t *testing.T) {
	client := NewClient(context.Background(), "development", false)
	assert.False(t, client.enabled)
	assert.NotPanics(t, func() {
		client.RecordFallback(context.Background(), "date", "auth")
	})
}

func TestCloudWatchRecordsMetrics(t *testing.T) {
	fake := &fakeCloudWatch{}
	client := &Client{client: fake, enabled: true, environment: "test"}

	client.RecordAPIRequest(context.Background(), "/ai/love-letter", 500, 20*time.Millisecond)
	client.RecordFallback(context.Background(), "date", "rate_limit")

	require.Eventually(t, func() bool {
		return len(fake.recorded()) == 3
	}, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"APIErrors", "APILatency", "Fallbacks"}, fake.recorded())
}
