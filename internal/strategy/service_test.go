package strategy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/catalog"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/profiler"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeMixer struct {
	err     error
	panics  bool
	empty   bool
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *fakeMixer) Mix(ctx context.Context, a, b models.AudienceProfile) (*models.AudienceProfile, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("mixer exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	return &models.AudienceProfile{
		ID:    a.ID + "+" + b.ID,
		Title: profiler.MixedTitle(a, b),
		Icon:  models.MixIcon,
	}, nil
}

type fakeEvaluator struct {
	result  *models.EvaluationResult
	err     error
	calls   atomic.Int32
	inputs  []profiler.EvaluationInput
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, in profiler.EvaluationInput) (*models.EvaluationResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestService(mixer ProfileMixer, evaluator IdeaEvaluator) *Service {
	return NewService(catalog.Default(), mixer, evaluator, Options{CallTimeout: time.Second}, zap.NewNop())
}

func mustSelect(t *testing.T, svc *Service, id string, channel models.Channel, audiences ...string) {
	t.Helper()
	_, err := svc.SelectChannel(id, channel)
	require.NoError(t, err)
	for _, a := range audiences {
		_, err := svc.ToggleAudience(id, a)
		require.NoError(t, err)
	}
}

func TestSelectionWalkthrough(t *testing.T) {
	svc := newTestService(&fakeMixer{}, &fakeEvaluator{})
	id := svc.CreateSession().SessionID

	snap, err := svc.SelectChannel(id, models.ChannelPhoto)
	require.NoError(t, err)
	require.NotNil(t, snap.Channel)
	assert.Equal(t, "Photography", snap.Channel.Label)

	snap, err = svc.ToggleAudience(id, "foodies")
	require.NoError(t, err)
	assert.Equal(t, selection.ActiveSingle, snap.Active.Kind)
	assert.Equal(t, "foodies", snap.Active.Profile.ID)

	snap, err = svc.ToggleAudience(id, "young-friends")
	require.NoError(t, err)
	assert.Equal(t, selection.ActiveNone, snap.Active.Kind)
	assert.True(t, snap.CanMix)

	snap, err = svc.ToggleAudience(id, "old-friends")
	require.NoError(t, err)
	assert.Equal(t, []string{"young-friends", "old-friends"}, snap.Audiences)
}

func TestUnknownInputs(t *testing.T) {
	svc := newTestService(&fakeMixer{}, &fakeEvaluator{})
	id := svc.CreateSession().SessionID

	_, err := svc.SelectChannel(id, "Radio")
	assert.ErrorIs(t, err, ErrUnknownChannel)
	_, err = svc.ToggleAudience(id, "pirates")
	assert.ErrorIs(t, err, ErrUnknownAudience)
	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Mix(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMixApplied(t *testing.T) {
	mixer := &fakeMixer{}
	svc := newTestService(mixer, &fakeEvaluator{})
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelVideo, "foodies", "families")

	res, err := svc.Mix(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, selection.ActiveMixed, res.Snapshot.Active.Kind)
	assert.Equal(t, "Mixed: Food and Event Enthusiasts & Families", res.Snapshot.Active.Profile.Title)
	assert.False(t, res.Snapshot.Mixing)
	assert.False(t, res.Snapshot.CanMix)

	again, err := svc.Mix(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, again.Outcome)
	assert.EqualValues(t, 1, mixer.calls.Load())
}

func TestMixSkippedWithoutTwoAudiences(t *testing.T) {
	mixer := &fakeMixer{}
	svc := newTestService(mixer, &fakeEvaluator{})
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelAd, "corporate")

	res, err := svc.Mix(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Zero(t, mixer.calls.Load())
}

func TestMixFailureLeavesStateAndClearsBusy(t *testing.T) {
	for name, mixer := range map[string]*fakeMixer{
		"error": {err: profiler.ErrInvalidResponse},
		"panic": {panics: true},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(mixer, &fakeEvaluator{})
			id := svc.CreateSession().SessionID
			mustSelect(t, svc, id, models.ChannelPost, "foodies", "families")

			res, err := svc.Mix(context.Background(), id)
			require.NoError(t, err)

			assert.Equal(t, OutcomeFailed, res.Outcome)
			assert.Error(t, res.Err)
			assert.Equal(t, selection.ActiveNone, res.Snapshot.Active.Kind)
			assert.True(t, res.Snapshot.CanMix)
			assert.False(t, res.Snapshot.Mixing)
		})
	}
}

func TestMixFailuresAreLogged(t *testing.T) {
	for name, mixer := range map[string]*fakeMixer{
		"error": {err: profiler.ErrInvalidResponse},
		"empty": {empty: true},
	} {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			svc := NewService(catalog.Default(), mixer, &fakeEvaluator{}, Options{CallTimeout: time.Second}, zap.New(core))
			id := svc.CreateSession().SessionID
			mustSelect(t, svc, id, models.ChannelAd, "foodies", "corporate")

			res, err := svc.Mix(context.Background(), id)
			require.NoError(t, err)

			assert.Equal(t, OutcomeFailed, res.Outcome)
			assert.False(t, res.Snapshot.Mixing)
			assert.Equal(t, 1, logs.FilterMessage("Mixing failed").Len())
		})
	}
}

func TestMixWhileBusyIsSkippedAndStaleResponseDropped(t *testing.T) {
	mixer := &fakeMixer{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := newTestService(mixer, &fakeEvaluator{})
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelPhoto, "foodies", "young-friends")

	done := make(chan Result, 1)
	go func() {
		res, _ := svc.Mix(context.Background(), id)
		done <- res
	}()
	<-mixer.started

	snap, err := svc.Get(id)
	require.NoError(t, err)
	assert.True(t, snap.Mixing)

	dup, err := svc.Mix(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, dup.Outcome)

	_, err = svc.ToggleAudience(id, "young-friends")
	require.NoError(t, err)
	_, err = svc.ToggleAudience(id, "young-friends")
	require.NoError(t, err)

	close(mixer.release)
	res := <-done

	assert.Equal(t, OutcomeStale, res.Outcome)
	assert.Equal(t, selection.ActiveNone, res.Snapshot.Active.Kind)
	assert.True(t, res.Snapshot.CanMix)
	assert.False(t, res.Snapshot.Mixing)
	assert.EqualValues(t, 1, mixer.calls.Load())
}

func TestEvaluateSkipsBlankIdea(t *testing.T) {
	evaluator := &fakeEvaluator{result: &models.EvaluationResult{Score: 50}}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelEDM, "families")

	for _, idea := range []string{"", "   ", "\n\t"} {
		res, err := svc.Evaluate(context.Background(), id, idea)
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkipped, res.Outcome)
		assert.False(t, res.Snapshot.Evaluating)
	}
	assert.Zero(t, evaluator.calls.Load())
}

func TestEvaluateRequiresActiveProfile(t *testing.T) {
	evaluator := &fakeEvaluator{result: &models.EvaluationResult{Score: 50}}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID

	res, err := svc.Evaluate(context.Background(), id, "fondue night")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)

	mustSelect(t, svc, id, models.ChannelEDM, "families", "corporate")
	res, err = svc.Evaluate(context.Background(), id, "fondue night")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Zero(t, evaluator.calls.Load())
}

func TestEvaluateAppliedAndKeptOnFailure(t *testing.T) {
	evaluator := &fakeEvaluator{result: &models.EvaluationResult{Score: 64, Reasoning: "ok"}}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelInfluencer, "internationals")

	res, err := svc.Evaluate(context.Background(), id, "  Late-night fondue and jazz  ")
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, res.Outcome)
	require.NotNil(t, res.Snapshot.Evaluation)
	assert.Equal(t, 64.0, res.Snapshot.Evaluation.Score)

	require.Len(t, evaluator.inputs, 1)
	assert.Equal(t, "Late-night fondue and jazz", evaluator.inputs[0].Idea)
	assert.Equal(t, models.ChannelInfluencer, evaluator.inputs[0].Channel)
	assert.Equal(t, "internationals", evaluator.inputs[0].Profile.ID)

	evaluator.err = errors.New("502 bad gateway")
	res, err = svc.Evaluate(context.Background(), id, "another idea")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.NotNil(t, res.Snapshot.Evaluation)
	assert.Equal(t, 64.0, res.Snapshot.Evaluation.Score)
	assert.False(t, res.Snapshot.Evaluating)
}

func TestEvaluateUsesMixedProfile(t *testing.T) {
	evaluator := &fakeEvaluator{result: &models.EvaluationResult{Score: 80}}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelVideo, "foodies", "corporate")

	_, err := svc.Mix(context.Background(), id)
	require.NoError(t, err)
	res, err := svc.Evaluate(context.Background(), id, "Chalet team dinners")
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, "foodies+corporate", evaluator.inputs[0].Profile.ID)
}

func TestStaleEvaluationDropped(t *testing.T) {
	evaluator := &fakeEvaluator{
		result:  &models.EvaluationResult{Score: 90},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelPhoto, "foodies")

	done := make(chan Result, 1)
	go func() {
		res, _ := svc.Evaluate(context.Background(), id, "Cheese pull close-ups")
		done <- res
	}()
	<-evaluator.started

	dup, err := svc.Evaluate(context.Background(), id, "Cheese pull close-ups")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, dup.Outcome)

	_, err = svc.SelectChannel(id, models.ChannelVideo)
	require.NoError(t, err)
	close(evaluator.release)

	res := <-done
	assert.Equal(t, OutcomeStale, res.Outcome)
	assert.Nil(t, res.Snapshot.Evaluation)
	assert.False(t, res.Snapshot.Evaluating)
}

func TestResetClearsEverythingAndIsIdempotent(t *testing.T) {
	evaluator := &fakeEvaluator{result: &models.EvaluationResult{Score: 70}}
	svc := newTestService(&fakeMixer{}, evaluator)
	id := svc.CreateSession().SessionID
	mustSelect(t, svc, id, models.ChannelAd, "families")
	_, err := svc.Evaluate(context.Background(), id, "Kids fondue workshop")
	require.NoError(t, err)

	first, err := svc.Reset(id)
	require.NoError(t, err)
	second, err := svc.Reset(id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Nil(t, second.Channel)
	assert.Empty(t, second.Audiences)
	assert.Equal(t, selection.ActiveNone, second.Active.Kind)
	assert.Nil(t, second.Evaluation)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	svc := NewService(catalog.Default(), &fakeMixer{}, &fakeEvaluator{}, Options{SessionTTL: time.Hour}, zap.NewNop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	idle := svc.CreateSession().SessionID
	now = now.Add(30 * time.Minute)
	fresh := svc.CreateSession().SessionID
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, svc.Sweep())
	_, err := svc.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(fresh)
	assert.NoError(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	svc := newTestService(&fakeMixer{}, &fakeEvaluator{})
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped
}
