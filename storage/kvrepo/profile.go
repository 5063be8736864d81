package kvrepo

import (
	"context"

	"github.com/trezcool/studytrack/core/profile"
)

var _ profile.Repository = (*Repository)(nil)

func (repo *Repository) GetProfile(ctx context.Context, tenant string) (profile.Profile, error) {
	if err := checkTenant(tenant); err != nil {
		return profile.Profile{}, err
	}
	return get[profile.Profile](ctx, repo.kv, profileKey(tenant), profile.ErrNotFound)
}

func (repo *Repository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if err := checkTenant(p.ID); err != nil {
		return profile.Profile{}, err
	}
	if err := put(ctx, repo.kv, profileKey(p.ID), p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (repo *Repository) UpdateProfile(ctx context.Context, tenant string, up profile.UpdateProfile) (profile.Profile, error) {
	p, err := repo.GetProfile(ctx, tenant)
	if err != nil {
		return profile.Profile{}, err
	}
	p = p.Apply(up)
	if err = put(ctx, repo.kv, profileKey(tenant), p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}
