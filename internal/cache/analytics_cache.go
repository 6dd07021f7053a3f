package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"interviewprep/internal/model"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache handles Redis storage of derived company analytics.
// Keys carry the dataset version so a reseeded corpus never serves stale
// results.
type AnalyticsCache interface {
	GetCompanyAnalysis(ctx context.Context, version, companyID string) (*model.CompanyAnalysis, error)
	SetCompanyAnalysis(ctx context.Context, version string, analysis *model.CompanyAnalysis) error

	GetRoleQuestionSet(ctx context.Context, version, companyID, roleID string) (*model.RoleQuestionSet, error)
	SetRoleQuestionSet(ctx context.Context, version string, set *model.RoleQuestionSet) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func (c *analyticsCache) analysisKey(version, companyID string) string {
	return fmt.Sprintf("prep:%s:company:%s:analysis", version, companyID)
}

func (c *analyticsCache) roleSetKey(version, companyID, roleID string) string {
	return fmt.Sprintf("prep:%s:company:%s:role:%s:set", version, companyID, roleID)
}

func (c *analyticsCache) GetCompanyAnalysis(ctx context.Context, version, companyID string) (*model.CompanyAnalysis, error) {
	var analysis model.CompanyAnalysis
	found, err := c.getJSON(ctx, c.analysisKey(version, companyID), &analysis)
	if err != nil || !found {
		return nil, err
	}
	return &analysis, nil
}

func (c *analyticsCache) SetCompanyAnalysis(ctx context.Context, version string, analysis *model.CompanyAnalysis) error {
	return c.setJSON(ctx, c.analysisKey(version, analysis.CompanyID), analysis)
}

func (c *analyticsCache) GetRoleQuestionSet(ctx context.Context, version, companyID, roleID string) (*model.RoleQuestionSet, error) {
	var set model.RoleQuestionSet
	found, err := c.getJSON(ctx, c.roleSetKey(version, companyID, roleID), &set)
	if err != nil || !found {
		return nil, err
	}
	return &set, nil
}

func (c *analyticsCache) SetRoleQuestionSet(ctx context.Context, version string, set *model.RoleQuestionSet) error {
	return c.setJSON(ctx, c.roleSetKey(version, set.CompanyID, set.RoleID), set)
}

func (c *analyticsCache) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *analyticsCache) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
