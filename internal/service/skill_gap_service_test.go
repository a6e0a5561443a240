package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/repository"
	"career-compass/internal/testhelpers"
)

var storytellerPath = domain.CareerPath{Title: "Bio-Data Storyteller", Description: "Turns health data into stories."}

func newSkillFixture(client llm.LLMClient, cache SkillCache) (*SkillGapService, *repository.DocSkillAnalysisRepository) {
	repo := repository.NewDocSkillAnalysisRepository(repository.NewMemoryDocumentStore())
	svc := NewSkillGapService(zap.NewNop(), newTestOracle(client), repo, cache)
	svc.now = fixedNow
	return svc, repo
}

func TestSkillGapAnalyzeCapsAndCaches(t *testing.T) {
	client := testhelpers.NewScriptedOracle()
	svc, repo := newSkillFixture(client, nil)

	a, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(a.SkillGap) != 2 {
		t.Fatalf("expected 2 skill gap entries, got %d", len(a.SkillGap))
	}
	if len(a.TotalSkills) < 3 || len(a.TotalSkills) > 5 {
		t.Fatalf("expected 3-5 total skills, got %d", len(a.TotalSkills))
	}

	again, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
	if err != nil {
		t.Fatalf("expected no error on cached call, got %v", err)
	}
	if client.Calls() != 1 {
		t.Fatalf("expected cached result without a new oracle call, got %d calls", client.Calls())
	}
	if again.Brief != a.Brief {
		t.Fatalf("expected identical cached analysis")
	}

	entry, err := repo.Get(context.Background(), "asha", storytellerPath.Title)
	if err != nil {
		t.Fatalf("expected document entry: %v", err)
	}
	if !entry.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("expected createdAt to be set, got %v", entry.CreatedAt)
	}
}

func TestSkillGapCacheIsPerUserAndPath(t *testing.T) {
	client := testhelpers.NewScriptedOracle()
	svc, repo := newSkillFixture(client, NewMemorySkillCache(0))
	ctx := context.Background()
	other := domain.CareerPath{Title: "Clinic Flow Architect", Description: "Redesigns clinics."}

	for _, call := range []struct {
		user string
		path domain.CareerPath
	}{
		{"asha", storytellerPath},
		{"asha", other},
		{"ravi", storytellerPath},
		{"asha", storytellerPath},
		{"asha", other},
	} {
		if _, err := svc.Analyze(ctx, call.user, validProfile(), call.path); err != nil {
			t.Fatalf("analyze: %v", err)
		}
	}
	if client.Calls() != 3 {
		t.Fatalf("expected 3 oracle calls, got %d", client.Calls())
	}

	doc, err := repo.List(ctx, "asha")
	if err != nil || len(doc.Entries) != 2 {
		t.Fatalf("expected two additive entries for asha, got %v (%v)", doc.Entries, err)
	}
}

func TestSkillGapPropagatesOracleErrors(t *testing.T) {
	tests := map[string]*llm.MockClient{
		"transport": {Err: errors.New("status=500")},
		"malformed": {Response: "I think you should learn Excel."},
		"schema":    {Response: `{"brief": "b", "totalSkills": ["a"], "skillGap": []}`},
		"unnamed":   {Response: `{"brief": "b", "totalSkills": ["a"], "skillGap": [{"skill": "", "reason": "r"}]}`},
	}
	for name, client := range tests {
		t.Run(name, func(t *testing.T) {
			svc, repo := newSkillFixture(client, nil)
			_, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
			if !errors.Is(err, ErrSkillAnalysisUnavailable) {
				t.Fatalf("expected ErrSkillAnalysisUnavailable, got %v", err)
			}
			if _, err := repo.List(context.Background(), "asha"); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("failed analyses must not be cached, got %v", err)
			}
		})
	}
}

func TestSkillGapValidation(t *testing.T) {
	client := testhelpers.NewScriptedOracle()
	svc, _ := newSkillFixture(client, nil)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "asha", domain.TraitProfile{}, storytellerPath); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing profile, got %v", err)
	}
	if _, err := svc.Analyze(ctx, "asha", validProfile(), domain.CareerPath{Title: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for incomplete path, got %v", err)
	}
	if _, err := svc.Analyze(ctx, "", validProfile(), storytellerPath); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing user, got %v", err)
	}
	if client.Calls() != 0 {
		t.Fatalf("oracle must not be called on invalid input")
	}
}

func TestSkillGapConcurrentRequestsCollapse(t *testing.T) {
	release := make(chan struct{})
	client := &llm.MockClient{Handler: func(prompt string) (string, error) {
		<-release
		return testhelpers.SkillJSON, nil
	}}
	svc, _ := newSkillFixture(client, nil)

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
			errs <- err
		}()
	}

	// deja que todos entren al singleflight antes de liberar la respuesta
	deadline := time.Now().Add(2 * time.Second)
	for client.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if client.Calls() < 1 || client.Calls() >= n {
		t.Fatalf("expected concurrent identical requests to share oracle calls, got %d", client.Calls())
	}
}

func TestSkillGapFrontCacheHitSkipsDocument(t *testing.T) {
	cache := NewMemorySkillCache(time.Hour)
	entry := domain.CachedSkillAnalysis{
		PathTitle: storytellerPath.Title,
		Analysis:  domain.SkillAnalysis{Brief: "from cache"},
	}
	_ = cache.Set(context.Background(), "asha", entry)

	svc := NewSkillGapService(zap.NewNop(), newTestOracle(testhelpers.NewScriptedOracle()),
		repository.NewDocSkillAnalysisRepository(failingStore{}), cache)

	a, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
	if err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
	if a.Brief != "from cache" {
		t.Fatalf("expected cached brief, got %q", a.Brief)
	}
}

func TestSkillGapDocumentHitWarmsCache(t *testing.T) {
	cache := NewMemorySkillCache(0)
	client := testhelpers.NewScriptedOracle()
	svc, repo := newSkillFixture(client, cache)
	_ = repo.Put(context.Background(), "asha", domain.CachedSkillAnalysis{
		PathTitle: storytellerPath.Title,
		Analysis:  domain.SkillAnalysis{Brief: "stored"},
	})

	if _, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if client.Calls() != 0 {
		t.Fatalf("document hit must not call the oracle")
	}
	if _, ok, _ := cache.Get(context.Background(), "asha", storytellerPath.Title); !ok {
		t.Fatalf("expected front cache to be warmed")
	}
}

func TestMemorySkillCacheExpires(t *testing.T) {
	cache := NewMemorySkillCache(time.Nanosecond)
	_ = cache.Set(context.Background(), "asha", domain.CachedSkillAnalysis{PathTitle: "p"})
	time.Sleep(time.Millisecond)
	if _, ok, _ := cache.Get(context.Background(), "asha", "p"); ok {
		t.Fatalf("expected entry to expire")
	}
}

type fakeRedisKV struct {
	mu    sync.Mutex
	items map[string]string
	ttl   time.Duration
	err   error
}

func (f *fakeRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.items[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.items[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisSkillCacheRoundTrip(t *testing.T) {
	kv := &fakeRedisKV{items: map[string]string{}}
	cache := NewRedisSkillCache(kv, time.Hour)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "asha", "p"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	entry := domain.CachedSkillAnalysis{PathTitle: "p", Analysis: domain.SkillAnalysis{Brief: "b"}, CreatedAt: fixedNow()}
	if err := cache.Set(ctx, "asha", entry); err != nil {
		t.Fatalf("set: %v", err)
	}
	if kv.ttl != time.Hour {
		t.Fatalf("expected ttl to be applied, got %v", kv.ttl)
	}
	got, ok, err := cache.Get(ctx, "asha", "p")
	if err != nil || !ok || got.Analysis.Brief != "b" || !got.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected cache read: %+v ok=%v err=%v", got, ok, err)
	}
	if _, present := kv.items["skill:analysis:asha:p"]; !present {
		t.Fatalf("expected prefixed key, got %v", kv.items)
	}
}

func TestSkillGapIgnoresBrokenFrontCache(t *testing.T) {
	kv := &fakeRedisKV{items: map[string]string{}, err: errors.New("redis down")}
	client := testhelpers.NewScriptedOracle()
	svc, _ := newSkillFixture(client, NewRedisSkillCache(kv, time.Hour))

	if _, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath); err != nil {
		t.Fatalf("a broken front cache must not fail the request, got %v", err)
	}
	if client.Calls() != 1 {
		t.Fatalf("expected one oracle call, got %d", client.Calls())
	}
}

func TestNewRedisSkillCacheNilClient(t *testing.T) {
	if NewRedisSkillCache(nil, time.Hour) != nil {
		t.Fatalf("expected nil cache for nil client")
	}
}

func TestSkillGapListNotFound(t *testing.T) {
	svc, _ := newSkillFixture(testhelpers.NewScriptedOracle(), nil)
	if _, err := svc.List(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// gatedClient bloquea hasta release y respeta la cancelacion del contexto que recibe.
type gatedClient struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (c *gatedClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.calls.Add(1) == 1 {
		close(c.started)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.release:
		return testhelpers.SkillJSON, nil
	}
}

func TestSkillGapCancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	client := &gatedClient{started: make(chan struct{}), release: make(chan struct{})}
	svc, repo := newSkillFixture(client, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(ctxA, "asha", validProfile(), storytellerPath)
		errA <- err
	}()
	<-client.started

	errB := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
		errB <- err
	}()
	// deja que B se sume a la llamada en curso
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancelled caller to get context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled caller did not return")
	}

	close(client.release)
	select {
	case err := <-errB:
		if err != nil {
			t.Fatalf("expected live caller to succeed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("live caller did not return")
	}

	if got := client.calls.Load(); got != 1 {
		t.Fatalf("expected a single oracle call, got %d", got)
	}
	if _, err := repo.Get(context.Background(), "asha", storytellerPath.Title); err != nil {
		t.Fatalf("expected shared result to be cached, got %v", err)
	}
}

func TestSkillGapSharedGenerationIsBounded(t *testing.T) {
	client := &gatedClient{started: make(chan struct{}), release: make(chan struct{})}
	svc, _ := newSkillFixture(client, nil)
	svc.generateTimeout = 20 * time.Millisecond

	_, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
	if !errors.Is(err, ErrSkillAnalysisUnavailable) {
		t.Fatalf("expected ErrSkillAnalysisUnavailable after timeout, got %v", err)
	}
}

func TestSkillGapWarnsOnShortGap(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	client := &llm.MockClient{Response: `{"brief": "b", "totalSkills": ["a"], "skillGap": [{"skill": "Resilience", "reason": "r"}]}`}
	repo := repository.NewDocSkillAnalysisRepository(repository.NewMemoryDocumentStore())
	svc := NewSkillGapService(zap.New(core), newTestOracle(client), repo, nil)

	analysis, err := svc.Analyze(context.Background(), "asha", validProfile(), storytellerPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.SkillGap) != 1 {
		t.Fatalf("expected the single item to be kept, got %d", len(analysis.SkillGap))
	}
	if logs.FilterMessage("skill analysis has fewer gap items than requested").Len() != 1 {
		t.Fatalf("expected a warning for the short skill gap")
	}
}
