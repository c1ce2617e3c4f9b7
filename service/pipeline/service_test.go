package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
)

type recordingRegistrar struct {
	mux       sync.Mutex
	processes []*model.Process
	failOn    int
}

func (r *recordingRegistrar) Add(_ context.Context, p *model.Process) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.failOn > 0 && p.ID == r.failOn {
		return errors.New("registration refused")
	}
	r.processes = append(r.processes, p)
	return nil
}

func testConfig(producers, total int) Config {
	config := DefaultConfig()
	config.Producers = producers
	config.TotalProcesses = total
	config.BufferSize = 2
	config.ProducerDelay = DelayRange{}
	config.ConsumerDelay = DelayRange{}
	return config
}

func TestService_Run(t *testing.T) {
	var testCases = []struct {
		name      string
		producers int
		total     int
		expected  int
	}{
		{name: "even split", producers: 2, total: 10, expected: 2},
		{name: "remainder to first producer", producers: 3, total: 10, expected: 3},
		{name: "raised to two producers", producers: 1, total: 7, expected: 2},
		{name: "fewer processes than producers", producers: 4, total: 3, expected: 4},
		{name: "nothing to produce", producers: 2, total: 0, expected: 2},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &event.Recorder[model.Process]{}
			srv, err := New(
				WithConfig(testConfig(testCase.producers, testCase.total)),
				WithGenerator(NewGenerator(DefaultGeneratorConfig(), 42)),
				WithListeners(recorder.Listen),
			)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, testCase.expected, srv.Config().Producers)

			registrar := &recordingRegistrar{}
			ctx, tracker := progress.WithNewTracker(context.Background(), "test", nil)
			done := make(chan error, 1)
			go func() { done <- srv.Run(ctx, registrar) }()
			select {
			case err = <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("pipeline did not finish")
			}
			assert.NoError(t, err)

			var ids []int
			for _, p := range registrar.processes {
				ids = append(ids, p.ID)
				assert.NoError(t, p.Validate())
				assert.Len(t, p.MaxDemand, 3)
			}
			sort.Ints(ids)
			for i, id := range ids {
				assert.Equal(t, i+1, id, "ids are unique and dense")
			}
			assert.Len(t, ids, testCase.total)
			assert.Len(t, recorder.Of(event.TypeProduced), testCase.total)

			snapshot := tracker.Snapshot()
			assert.Equal(t, testCase.total, snapshot.Produced)
			assert.Equal(t, testCase.total, snapshot.Consumed)
		})
	}
}

func TestService_RunRegistrarError(t *testing.T) {
	srv, err := New(WithConfig(testConfig(2, 6)))
	assert.NoError(t, err)
	err = srv.Run(context.Background(), &recordingRegistrar{failOn: 1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "registration refused")

	assert.Error(t, srv.Run(context.Background(), nil))
}

func TestService_RunCancelled(t *testing.T) {
	config := testConfig(2, 4)
	config.ProducerDelay = DelayRange{Min: time.Second, Max: time.Second}
	srv, err := New(WithConfig(config))
	assert.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = srv.Run(ctx, &recordingRegistrar{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "zero buffer", mutate: func(c *Config) { c.BufferSize = 0 }, wantErr: true},
		{name: "negative total", mutate: func(c *Config) { c.TotalProcesses = -1 }, wantErr: true},
		{name: "inverted delay", mutate: func(c *Config) { c.ConsumerDelay = DelayRange{Min: time.Second} }, wantErr: true},
		{name: "no resource types", mutate: func(c *Config) { c.Generator.NumResources = 0 }, wantErr: true},
		{name: "zero burst bound", mutate: func(c *Config) { c.Generator.MaxBurst = 0 }, wantErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			config := DefaultConfig()
			testCase.mutate(&config)
			err := config.Validate()
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Share(t *testing.T) {
	config := testConfig(3, 11)
	assert.Equal(t, 5, config.share(0))
	assert.Equal(t, 3, config.share(1))
	assert.Equal(t, 3, config.share(2))
}

func TestGenerator(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.MaxArrival = 4
	first := NewGenerator(config, 7)
	second := NewGenerator(config, 7)
	for i := 1; i <= 50; i++ {
		p := first.Next(i)
		assert.Equal(t, p, second.Next(i), "same seed yields the same descriptors")
		assert.True(t, p.BurstTime >= 1 && p.BurstTime <= 10)
		assert.True(t, p.Priority >= 1 && p.Priority <= 5)
		assert.True(t, p.ArrivalTime >= 0 && p.ArrivalTime <= 4)
		for _, d := range p.MaxDemand {
			assert.True(t, d >= 1 && d <= 5)
		}
	}
	delay := first.Delay(DelayRange{Min: 100 * time.Millisecond, Max: 600 * time.Millisecond})
	assert.True(t, delay >= 100*time.Millisecond && delay <= 600*time.Millisecond)
	assert.Equal(t, time.Duration(0), first.Delay(DelayRange{}))
}

func TestCoordinator_NextID(t *testing.T) {
	coordinator := NewCoordinator("run", nil)
	var wg sync.WaitGroup
	var mux sync.Mutex
	seen := map[int]bool{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				id := coordinator.NextID()
				mux.Lock()
				seen[id] = true
				mux.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 200)
	assert.True(t, seen[1])
	assert.True(t, seen[200])
	assert.False(t, coordinator.Finished())
	coordinator.Finish()
	assert.True(t, coordinator.Finished())
}
