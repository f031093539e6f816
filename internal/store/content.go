// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/olegiv/ccms-go/internal/model"
)

var servicesTable = &table[model.Service]{
	name: "services",
	columns: []string{"slug", "title", "short_description", "description", "icon", "image_url",
		"features", "sort_order", "is_active"},
	fields: func(s *model.Service) []any {
		return []any{&s.Slug, &s.Title, &s.ShortDescription, &s.Description, &s.Icon, &s.ImageURL,
			&s.Features, &s.Order, &s.IsActive}
	},
	meta: func(s *model.Service) (*int64, *time.Time, *time.Time) {
		return &s.ID, &s.CreatedAt, &s.UpdatedAt
	},
	orderBy: byPosition,
	key:     "slug",
	active:  "is_active",
}

var metricsTable = &table[model.Metric]{
	name:    "metrics",
	columns: []string{"label", "value", "suffix", "icon", "sort_order", "is_active"},
	fields: func(m *model.Metric) []any {
		return []any{&m.Label, &m.Value, &m.Suffix, &m.Icon, &m.Order, &m.IsActive}
	},
	meta: func(m *model.Metric) (*int64, *time.Time, *time.Time) {
		return &m.ID, &m.CreatedAt, &m.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var testimonialsTable = &table[model.Testimonial]{
	name: "testimonials",
	columns: []string{"client_name", "client_role", "company", "content", "rating", "avatar_url",
		"sort_order", "is_active"},
	fields: func(t *model.Testimonial) []any {
		return []any{&t.ClientName, &t.ClientRole, &t.Company, &t.Content, &t.Rating, &t.AvatarURL,
			&t.Order, &t.IsActive}
	},
	meta: func(t *model.Testimonial) (*int64, *time.Time, *time.Time) {
		return &t.ID, &t.CreatedAt, &t.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var clientsTable = &table[model.Client]{
	name:    "clients",
	columns: []string{"name", "logo_url", "website_url", "industry", "sort_order", "is_active"},
	fields: func(c *model.Client) []any {
		return []any{&c.Name, &c.LogoURL, &c.WebsiteURL, &c.Industry, &c.Order, &c.IsActive}
	},
	meta: func(c *model.Client) (*int64, *time.Time, *time.Time) {
		return &c.ID, &c.CreatedAt, &c.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var certificationsTable = &table[model.Certification]{
	name:    "certifications",
	columns: []string{"name", "issuer", "description", "image_url", "sort_order", "is_active"},
	fields: func(c *model.Certification) []any {
		return []any{&c.Name, &c.Issuer, &c.Description, &c.ImageURL, &c.Order, &c.IsActive}
	},
	meta: func(c *model.Certification) (*int64, *time.Time, *time.Time) {
		return &c.ID, &c.CreatedAt, &c.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var officesTable = &table[model.Office]{
	name: "offices",
	columns: []string{"city", "country", "address", "phone", "email", "timezone", "image_url",
		"is_headquarters", "sort_order", "is_active"},
	fields: func(o *model.Office) []any {
		return []any{&o.City, &o.Country, &o.Address, &o.Phone, &o.Email, &o.Timezone, &o.ImageURL,
			&o.IsHeadquarters, &o.Order, &o.IsActive}
	},
	meta: func(o *model.Office) (*int64, *time.Time, *time.Time) {
		return &o.ID, &o.CreatedAt, &o.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var benefitsTable = &table[model.Benefit]{
	name:    "benefits",
	columns: []string{"title", "description", "icon", "sort_order", "is_active"},
	fields: func(b *model.Benefit) []any {
		return []any{&b.Title, &b.Description, &b.Icon, &b.Order, &b.IsActive}
	},
	meta: func(b *model.Benefit) (*int64, *time.Time, *time.Time) {
		return &b.ID, &b.CreatedAt, &b.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var valuesTable = &table[model.Value]{
	name:    "company_values",
	columns: []string{"title", "description", "icon", "sort_order", "is_active"},
	fields: func(v *model.Value) []any {
		return []any{&v.Title, &v.Description, &v.Icon, &v.Order, &v.IsActive}
	},
	meta: func(v *model.Value) (*int64, *time.Time, *time.Time) {
		return &v.ID, &v.CreatedAt, &v.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var teamMembersTable = &table[model.TeamMember]{
	name: "team_members",
	columns: []string{"name", "role", "department", "bio", "photo_url", "linkedin_url", "email",
		"sort_order", "is_active"},
	fields: func(m *model.TeamMember) []any {
		return []any{&m.Name, &m.Role, &m.Department, &m.Bio, &m.PhotoURL, &m.LinkedInURL, &m.Email,
			&m.Order, &m.IsActive}
	},
	meta: func(m *model.TeamMember) (*int64, *time.Time, *time.Time) {
		return &m.ID, &m.CreatedAt, &m.UpdatedAt
	},
	orderBy: byPosition,
	active:  "is_active",
}

var heroSectionsTable = &table[model.HeroSection]{
	name: "hero_sections",
	columns: []string{"page", "title", "subtitle", "cta_text", "cta_link", "background_image",
		"is_active"},
	fields: func(h *model.HeroSection) []any {
		return []any{&h.Page, &h.Title, &h.Subtitle, &h.CTAText, &h.CTALink, &h.BackgroundImage,
			&h.IsActive}
	},
	meta: func(h *model.HeroSection) (*int64, *time.Time, *time.Time) {
		return &h.ID, &h.CreatedAt, &h.UpdatedAt
	},
	orderBy: "page ASC",
	key:     "page",
	active:  "is_active",
}

var pagesTable = &table[model.Page]{
	name:    "pages",
	columns: []string{"slug", "title", "content", "meta_title", "meta_description", "is_active"},
	fields: func(p *model.Page) []any {
		return []any{&p.Slug, &p.Title, &p.Content, &p.MetaTitle, &p.MetaDescription, &p.IsActive}
	},
	meta: func(p *model.Page) (*int64, *time.Time, *time.Time) {
		return &p.ID, &p.CreatedAt, &p.UpdatedAt
	},
	orderBy: "slug ASC",
	key:     "slug",
	active:  "is_active",
}

var blogPostsTable = &table[model.BlogPost]{
	name: "blog_posts",
	columns: []string{"slug", "title", "excerpt", "content", "cover_image", "author", "category",
		"tags", "is_published", "published_at"},
	fields: func(p *model.BlogPost) []any {
		return []any{&p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage, &p.Author, &p.Category,
			&p.Tags, &p.IsPublished, &p.PublishedAt}
	},
	meta: func(p *model.BlogPost) (*int64, *time.Time, *time.Time) {
		return &p.ID, &p.CreatedAt, &p.UpdatedAt
	},
	orderBy: byNewest,
	key:     "slug",
	active:  "is_published",
}

var jobPositionsTable = &table[model.JobPosition]{
	name: "job_positions",
	columns: []string{"slug", "title", "department", "location", "employment_type", "description",
		"requirements", "benefits", "salary_range", "is_active"},
	fields: func(j *model.JobPosition) []any {
		return []any{&j.Slug, &j.Title, &j.Department, &j.Location, &j.EmploymentType, &j.Description,
			&j.Requirements, &j.Benefits, &j.SalaryRange, &j.IsActive}
	},
	meta: func(j *model.JobPosition) (*int64, *time.Time, *time.Time) {
		return &j.ID, &j.CreatedAt, &j.UpdatedAt
	},
	orderBy: byNewest,
	key:     "slug",
	active:  "is_active",
}

// Services returns the services table.
func (q *Queries) Services() *Repo[model.Service] { return newRepo(q.db, servicesTable) }

// Metrics returns the metrics table.
func (q *Queries) Metrics() *Repo[model.Metric] { return newRepo(q.db, metricsTable) }

// Testimonials returns the testimonials table.
func (q *Queries) Testimonials() *Repo[model.Testimonial] { return newRepo(q.db, testimonialsTable) }

// Clients returns the clients table.
func (q *Queries) Clients() *Repo[model.Client] { return newRepo(q.db, clientsTable) }

// Certifications returns the certifications table.
func (q *Queries) Certifications() *Repo[model.Certification] {
	return newRepo(q.db, certificationsTable)
}

// Offices returns the offices table.
func (q *Queries) Offices() *Repo[model.Office] { return newRepo(q.db, officesTable) }

// Benefits returns the benefits table.
func (q *Queries) Benefits() *Repo[model.Benefit] { return newRepo(q.db, benefitsTable) }

// Values returns the company values table.
func (q *Queries) Values() *Repo[model.Value] { return newRepo(q.db, valuesTable) }

// TeamMembers returns the team members table.
func (q *Queries) TeamMembers() *Repo[model.TeamMember] { return newRepo(q.db, teamMembersTable) }

// HeroSections returns the hero sections table, keyed by page name.
func (q *Queries) HeroSections() *Repo[model.HeroSection] { return newRepo(q.db, heroSectionsTable) }

// Pages returns the pages table, keyed by slug.
func (q *Queries) Pages() *Repo[model.Page] { return newRepo(q.db, pagesTable) }

// BlogPosts returns the blog posts table; "active" means published.
func (q *Queries) BlogPosts() *Repo[model.BlogPost] { return newRepo(q.db, blogPostsTable) }

// JobPositions returns the job positions table, keyed by slug.
func (q *Queries) JobPositions() *Repo[model.JobPosition] { return newRepo(q.db, jobPositionsTable) }
