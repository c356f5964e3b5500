package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/utils"
)

const surveyKeyPrefix = "anket:survey:"

// SurveyCache stores survey definitions. Cache errors are logged and
// treated as misses so a broken cache never fails a fetch.
type SurveyCache struct {
	cache  CacheService
	ttl    time.Duration
	logger utils.Logger
}

func NewSurveyCache(cache CacheService, ttl time.Duration, logger utils.Logger) *SurveyCache {
	return &SurveyCache{cache: cache, ttl: ttl, logger: logger}
}

func SurveyKey(surveyID models.ID) string {
	return surveyKeyPrefix + surveyID.String()
}

func (c *SurveyCache) GetSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, bool) {
	var survey models.Survey
	err := c.cache.Get(ctx, SurveyKey(surveyID), &survey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.WarnContext(ctx, "Survey cache read failed", "survey_id", surveyID.String(), "error", err)
		}
		return nil, false
	}
	return &survey, true
}

func (c *SurveyCache) SetSurvey(ctx context.Context, survey models.Survey) {
	if survey.ID.IsZero() {
		return
	}
	if err := c.cache.Set(ctx, SurveyKey(survey.ID), survey, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "Survey cache write failed", "survey_id", survey.ID.String(), "error", err)
	}
}

// Invalidate drops one survey, or every survey when surveyID is empty.
func (c *SurveyCache) Invalidate(ctx context.Context, surveyID models.ID) error {
	var err error
	if surveyID.IsZero() {
		err = c.cache.DeletePattern(ctx, surveyKeyPrefix+"*")
	} else {
		err = c.cache.Delete(ctx, SurveyKey(surveyID))
	}
	if err != nil {
		c.logger.WarnContext(ctx, "Survey cache invalidate failed", "survey_id", surveyID.String(), "error", err)
	}
	return err
}
