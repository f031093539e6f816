// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/ccms-go/internal/store"
	"github.com/olegiv/ccms-go/internal/util"
)

// maxSlugSuffix bounds the "-2", "-3", ... attempts for generated slugs.
// Past it a random suffix is tried instead.
const maxSlugSuffix = 100

// randomSuffixAttempts bounds the random suffixes tried after the numeric ones.
const randomSuffixAttempts = 5

// slugHook fills an empty slug from the title and enforces uniqueness.
// Generated slugs get a numeric suffix on collision; a slug the caller chose
// explicitly fails with ErrConflict instead.
func slugHook[T any](repo *store.Repo[T], slug func(*T) *string, title func(*T) string) func(context.Context, *T, int64) error {
	return func(ctx context.Context, v *T, id int64) error {
		s := slug(v)
		*s = strings.TrimSpace(*s)
		generated := false
		if *s == "" {
			*s = util.Slugify(title(v))
			generated = true
		}
		if *s == "" {
			return nil // reported by the required rule
		}
		return uniqueKey(ctx, repo, "slug", s, id, generated)
	}
}

// keyHook enforces uniqueness of a caller-chosen natural key.
func keyHook[T any](repo *store.Repo[T], field string, key func(*T) *string) func(context.Context, *T, int64) error {
	return func(ctx context.Context, v *T, id int64) error {
		k := key(v)
		*k = strings.TrimSpace(*k)
		if *k == "" {
			return nil
		}
		return uniqueKey(ctx, repo, field, k, id, false)
	}
}

func uniqueKey[T any](ctx context.Context, repo *store.Repo[T], field string, key *string, id int64, generated bool) error {
	base := *key
	if generated && len(base) > util.MaxSlugLength-9 {
		base = strings.TrimRight(base[:util.MaxSlugLength-9], "-")
		*key = base
	}

	for n := 2; n <= maxSlugSuffix+randomSuffixAttempts+1; n++ {
		exists, err := repo.KeyExists(ctx, *key, id)
		if err != nil {
			return storeErr(repo.Name(), err)
		}
		if !exists {
			return nil
		}
		if !generated {
			break
		}
		if n <= maxSlugSuffix {
			*key = fmt.Sprintf("%s-%d", base, n)
		} else {
			*key = base + "-" + uuid.NewString()[:8]
		}
	}
	return fmt.Errorf("%s %q already exists: %w", field, *key, ErrConflict)
}
