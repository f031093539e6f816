// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the procedures behind the admin panel and the
// public site: validated CRUD over every content entity, the public intake
// forms, admin authentication, and media upload on the object store.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/geoip"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
)

// DefaultCacheTTL applies when Deps.CacheTTL is zero.
const DefaultCacheTTL = 5 * time.Minute

// Deps are the collaborators shared by all procedures.
type Deps struct {
	DB       *sql.DB
	Cache    cache.Cache // nil selects a private memory cache
	CacheTTL time.Duration
	Objects  storage.ObjectStore
	GeoIP    *geoip.Resolver // nil disables country lookup
}

// Procedures is the aggregation root: one field per entity namespace.
type Procedures struct {
	Services       *Services
	Metrics        *Collection[model.Metric, MetricPatch]
	Testimonials   *Collection[model.Testimonial, TestimonialPatch]
	Clients        *Collection[model.Client, ClientPatch]
	Certifications *Collection[model.Certification, CertificationPatch]
	Offices        *Collection[model.Office, OfficePatch]
	Benefits       *Collection[model.Benefit, BenefitPatch]
	Values         *Collection[model.Value, ValuePatch]
	TeamMembers    *Collection[model.TeamMember, TeamMemberPatch]
	HeroSections   *HeroSections
	Pages          *Pages
	BlogPosts      *BlogPosts
	JobPositions   *Collection[model.JobPosition, JobPositionPatch]

	Settings           *Settings
	AdminUsers         *AdminUsers
	ContactRequests    *ContactRequests
	Newsletter         *Newsletter
	CareerApplications *CareerApplications
	Media              *Media
	Stats              *Stats
	Events             *Events
}

// New wires every procedure module.
func New(d Deps) *Procedures {
	if d.Cache == nil {
		d.Cache = cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: DefaultCacheTTL})
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = DefaultCacheTTL
	}
	q := store.New(d.DB)
	c, ttl := d.Cache, d.CacheTTL

	p := &Procedures{
		Services: newServices(q, c, ttl),
		Metrics: newCollection[model.Metric, MetricPatch](q.Metrics(), c, ttl, collectionOpts[model.Metric]{
			label:    "metric",
			defaults: func() model.Metric { return model.Metric{IsActive: true} },
		}),
		Testimonials: newCollection[model.Testimonial, TestimonialPatch](q.Testimonials(), c, ttl, collectionOpts[model.Testimonial]{
			label:    "testimonial",
			defaults: func() model.Testimonial { return model.Testimonial{Rating: 5, IsActive: true} },
		}),
		Clients: newCollection[model.Client, ClientPatch](q.Clients(), c, ttl, collectionOpts[model.Client]{
			label:    "client",
			defaults: func() model.Client { return model.Client{IsActive: true} },
		}),
		Certifications: newCollection[model.Certification, CertificationPatch](q.Certifications(), c, ttl, collectionOpts[model.Certification]{
			label:    "certification",
			defaults: func() model.Certification { return model.Certification{IsActive: true} },
		}),
		Offices: newCollection[model.Office, OfficePatch](q.Offices(), c, ttl, collectionOpts[model.Office]{
			label:    "office",
			defaults: func() model.Office { return model.Office{IsActive: true} },
		}),
		Benefits: newCollection[model.Benefit, BenefitPatch](q.Benefits(), c, ttl, collectionOpts[model.Benefit]{
			label:    "benefit",
			defaults: func() model.Benefit { return model.Benefit{IsActive: true} },
		}),
		Values: newCollection[model.Value, ValuePatch](q.Values(), c, ttl, collectionOpts[model.Value]{
			label:    "value",
			defaults: func() model.Value { return model.Value{IsActive: true} },
		}),
		TeamMembers: newCollection[model.TeamMember, TeamMemberPatch](q.TeamMembers(), c, ttl, collectionOpts[model.TeamMember]{
			label:    "team member",
			defaults: func() model.TeamMember { return model.TeamMember{IsActive: true} },
		}),
		HeroSections: newHeroSections(q, c, ttl),
		Pages:        newPages(q, c, ttl),
		BlogPosts:    newBlogPosts(q, c, ttl),
		JobPositions: newJobPositions(q, c, ttl),

		Settings:           newSettings(q, c, ttl),
		AdminUsers:         &AdminUsers{db: d.DB, q: q},
		ContactRequests:    &ContactRequests{q: q, geo: d.GeoIP},
		Newsletter:         &Newsletter{q: q},
		CareerApplications: &CareerApplications{q: q, objects: d.Objects, now: time.Now},
		Media:              &Media{objects: d.Objects},
		Events:             &Events{q: q},
	}
	p.Stats = &Stats{q: q, cache: c}
	return p
}

func newJobPositions(q *store.Queries, c cache.Cache, ttl time.Duration) *Collection[model.JobPosition, JobPositionPatch] {
	repo := q.JobPositions()
	return newCollection[model.JobPosition, JobPositionPatch](repo, c, ttl, collectionOpts[model.JobPosition]{
		label: "job position",
		defaults: func() model.JobPosition {
			return model.JobPosition{EmploymentType: model.EmploymentFullTime, IsActive: true}
		},
		beforeSave: slugHook(repo,
			func(j *model.JobPosition) *string { return &j.Slug },
			func(j *model.JobPosition) string { return j.Title }),
	})
}

// HeroSections holds one banner per site page.
type HeroSections struct {
	*Collection[model.HeroSection, HeroSectionPatch]
}

func newHeroSections(q *store.Queries, c cache.Cache, ttl time.Duration) *HeroSections {
	repo := q.HeroSections()
	return &HeroSections{newCollection[model.HeroSection, HeroSectionPatch](repo, c, ttl, collectionOpts[model.HeroSection]{
		label:      "hero section",
		defaults:   func() model.HeroSection { return model.HeroSection{IsActive: true} },
		beforeSave: keyHook(repo, "page", func(h *model.HeroSection) *string { return &h.Page }),
	})}
}

// GetByPage returns the active hero of page, or (nil, nil) if there is none.
func (h *HeroSections) GetByPage(ctx context.Context, page string) (*model.HeroSection, error) {
	return h.GetActiveByKey(ctx, page)
}
