package github

import (
	"context"

	"go.uber.org/zap"

	"prstats/internal/domain"
	"prstats/internal/logger"
)

type userPayload struct {
	Login string  `json:"login"`
	Name  *string `json:"name"`
}

// UserResolver turns profile URLs into display identities. Results are cached
// for the lifetime of one run, so each distinct profile costs one API call no
// matter how many pull requests reference it.
type UserResolver struct {
	client *Client
	cache  map[string]domain.User
}

func NewUserResolver(client *Client) *UserResolver {
	return &UserResolver{
		client: client,
		cache:  make(map[string]domain.User),
	}
}

// Resolve never fails: a profile that can not be fetched or parsed resolves
// to the unknown identity, so one broken account does not take the whole
// report down. Failures are cached like successes.
func (r *UserResolver) Resolve(ctx context.Context, profileURL string) domain.User {
	if user, ok := r.cache[profileURL]; ok {
		return user
	}

	user := r.fetch(ctx, profileURL)
	r.cache[profileURL] = user

	return user
}

func (r *UserResolver) fetch(ctx context.Context, profileURL string) domain.User {
	var payload userPayload
	if _, err := r.client.getJSON(ctx, profileURL, &payload); err != nil {
		logger.FromContext(ctx).Warn("can not resolve user profile",
			zap.String("url", profileURL),
			zap.Error(err),
		)
		return domain.UnknownUser
	}

	var name string
	if payload.Name != nil {
		name = *payload.Name
	}

	if payload.Login == "" && name == "" {
		logger.FromContext(ctx).Warn("user profile carries no usable identity",
			zap.String("url", profileURL),
		)
		return domain.UnknownUser
	}

	return domain.User{Login: payload.Login, Name: name, Known: true}
}
