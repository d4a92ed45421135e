// SPDX-License-Identifier: GPL-3.0-only

package access

import (
	"context"

	"presspass-server/models"
)

// Engine combines the pure role predicates with subscription-based content
// gating. It holds no state of its own beyond the resolver it consults.
type Engine struct {
	resolver *Resolver
}

func NewEngine(resolver *Resolver) *Engine {
	return &Engine{resolver: resolver}
}

func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// CanReadNews decides whether the actor may see the article's full
// content. Drafts are visible to admins and the author only. Published
// non-pro articles are visible to everyone, including anonymous callers.
// Published pro articles go through content gating.
func (e *Engine) CanReadNews(ctx context.Context, actor *models.User, news *models.News) (bool, error) {
	if !news.IsPublished() {
		return actor != nil && (actor.IsAdmin() || actor.ID == news.AuthorID), nil
	}
	return e.CanAccessContent(ctx, actor, news)
}

// CanAccessContent applies the pro-content gate. Editors and admins have
// operational access regardless of subscription; readers and anonymous
// callers need vertical access through an active subscription.
func (e *Engine) CanAccessContent(ctx context.Context, actor *models.User, news *models.News) (bool, error) {
	if !news.IsProContent {
		return true, nil
	}
	if actor != nil && !actor.IsReader() {
		return true, nil
	}
	return e.HasVerticalAccess(ctx, actor, news.Category)
}

// HasVerticalAccess reports whether the actor may consume content in the
// given vertical: always for admins and editors, and for readers only
// when their active subscription's plan bundles it.
func (e *Engine) HasVerticalAccess(ctx context.Context, actor *models.User, slug models.VerticalSlug) (bool, error) {
	if actor == nil {
		return false, nil
	}
	if actor.IsAdmin() || actor.IsEditor() {
		return true, nil
	}

	subscription, err := e.resolver.ActiveSubscription(ctx, actor.ID)
	if err != nil {
		return false, err
	}
	if subscription == nil {
		return false, nil
	}
	return subscription.Plan.IncludesVertical(slug), nil
}
