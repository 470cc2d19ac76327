package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
)

// reportWindow caps how many complaints a single report evaluates.
const reportWindow = 1000

// defaultReportCacheTTL bounds how stale a cached report may be.
const defaultReportCacheTTL = 30 * time.Second

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ReportServiceOptions groups the dependencies for ReportService.
// Evaluator defaults to the go-jmespath implementation. Cache is optional;
// with one configured, identical queries within CacheTTL are served from it.
type ReportServiceOptions struct {
	Complaints core.ComplaintRepository
	Evaluator  JMESPathEvaluator
	Cache      core.CacheRepository
	CacheTTL   time.Duration
}

// ReportService answers ad-hoc admin queries over the complaint dataset
// using JMESPath expressions.
type ReportService struct {
	complaints core.ComplaintRepository
	jems       JMESPathEvaluator
	cache      core.CacheRepository
	cacheTTL   time.Duration
}

// NewReportService constructs a ReportService from options.
func NewReportService(opts ReportServiceOptions) *ReportService {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultReportCacheTTL
	}
	return &ReportService{
		complaints: opts.Complaints,
		jems:       jems,
		cache:      opts.Cache,
		cacheTTL:   ttl,
	}
}

// ComplaintsReport evaluates a JMESPath expression over the most recent
// complaints. An empty query returns the dataset unchanged.
func (s *ReportService) ComplaintsReport(ctx context.Context, query string) (any, error) {
	if query == "" {
		query = "@"
	}
	if err := s.jems.Validate(query); err != nil {
		return nil, apperrors.Validationf("invalid query: %v", err)
	}

	cacheKey := reportCacheKey(query)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	complaints, err := s.complaints.List(ctx, &model.ComplaintsListOptions{
		Limit: reportWindow,
		Sort:  "created_at",
		Dir:   "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("load complaints: %w", err)
	}

	// Round-trip through JSON so the evaluator sees plain maps and slices.
	raw, err := json.Marshal(complaints)
	if err != nil {
		return nil, fmt.Errorf("encode complaints: %w", err)
	}
	var dataset any
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("decode complaints: %w", err)
	}

	result, err := s.jems.Evaluate(query, dataset)
	if err != nil {
		return nil, apperrors.Validationf("query failed: %v", err)
	}

	s.storeResult(ctx, cacheKey, result)
	return result, nil
}

func reportCacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "report:complaints:" + hex.EncodeToString(sum[:])
}

// cachedResult returns a previously stored result for the key, if any.
// Cache errors are treated as misses.
func (s *ReportService) cachedResult(ctx context.Context, key string) (any, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, false
	}
	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return result, true
}

// storeResult writes the result to the cache, best-effort.
func (s *ReportService) storeResult(ctx context.Context, key string, result any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, raw, s.cacheTTL)
}
