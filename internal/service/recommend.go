package service

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taskpilot/taskpilot/internal/ai"
	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/validation"
)

const (
	promptPreamble = "You are a recommendation engine. I will provide a title, a description, " +
		"one of 'high', 'medium' or 'low' as a priority value along with some tags, and you will "
	promptSuffix = " Do NOT add quotations, do NOT add explanations, provide ONLY the answer. " +
		"Do NOT return json, return plain text."

	titlePrompt       = promptPreamble + "give me the best possible title recommendation for this todo item." + promptSuffix
	descriptionPrompt = promptPreamble + "give me the best possible description recommendation for this todo item. " +
		"The description should not be shorter than the original; try to add recommendations." + promptSuffix
	priorityPrompt = promptPreamble + "give me the best possible priority recommendation for this todo item. " +
		"The recommendation must only be one of 'high', 'medium' or 'low'." + promptSuffix
	tagsPrompt = promptPreamble + "give me the best possible tag list recommendation for this todo item. " +
		"The recommendation must be comma separated strings. Recommend up to 5 tags." + promptSuffix
)

type RecommendService struct {
	client ai.Client
}

func NewRecommendService(client ai.Client) *RecommendService {
	return &RecommendService{client: client}
}

// Recommend issues four independent completions, one per field, and
// aggregates them. A field whose completion comes back empty falls back to
// the original input; an empty tag completion yields an empty list. Upstream
// failures propagate without retry.
func (s *RecommendService) Recommend(ctx context.Context, req dto.RecommendRequest) (*dto.Recommendation, error) {
	if err := validation.Recommend(req); err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	// The draft is serialized once and sent verbatim as the user message of
	// all four calls.
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	draft := string(payload)

	var title, description, priority, tagList string

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		title, err = s.client.Complete(groupCtx, titlePrompt, draft)
		return err
	})
	group.Go(func() (err error) {
		description, err = s.client.Complete(groupCtx, descriptionPrompt, draft)
		return err
	})
	group.Go(func() (err error) {
		priority, err = s.client.Complete(groupCtx, priorityPrompt, draft)
		return err
	})
	group.Go(func() (err error) {
		tagList, err = s.client.Complete(groupCtx, tagsPrompt, draft)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	rec := &dto.Recommendation{
		Title:       fallback(title, req.Title),
		Description: fallback(description, req.Description),
		Priority:    fallback(priority, req.Priority),
		Tags:        splitTags(tagList),
	}
	return rec, nil
}

func fallback(value, original string) string {
	if strings.TrimSpace(value) == "" {
		return original
	}
	return value
}

// splitTags parses the comma-separated completion, dropping blanks and
// duplicates while keeping first-seen order.
func splitTags(list string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range strings.Split(list, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
