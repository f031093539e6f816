// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/service"
)

// resources lists every content entity with its route prefix.
func (h *Handler) resources() []mounter {
	p := h.p
	return []mounter{
		&resource[model.Service, service.ServicePatch]{
			path: "/services", label: "service", procs: p.Services,
			byKey: keyed(p.Services.GetActiveByKey),
			admin: func(r chi.Router) { r.Post("/reorder", h.ReorderServices) },
		},
		&resource[model.Metric, service.MetricPatch]{
			path: "/metrics", label: "metric", procs: p.Metrics,
		},
		&resource[model.Testimonial, service.TestimonialPatch]{
			path: "/testimonials", label: "testimonial", procs: p.Testimonials,
		},
		&resource[model.Client, service.ClientPatch]{
			path: "/clients", label: "client", procs: p.Clients,
		},
		&resource[model.Certification, service.CertificationPatch]{
			path: "/certifications", label: "certification", procs: p.Certifications,
		},
		&resource[model.Office, service.OfficePatch]{
			path: "/offices", label: "office", procs: p.Offices,
		},
		&resource[model.Benefit, service.BenefitPatch]{
			path: "/benefits", label: "benefit", procs: p.Benefits,
		},
		&resource[model.Value, service.ValuePatch]{
			path: "/values", label: "value", procs: p.Values,
		},
		&resource[model.TeamMember, service.TeamMemberPatch]{
			path: "/team-members", label: "team member", procs: p.TeamMembers,
		},
		&resource[model.BlogPost, service.BlogPostPatch]{
			path: "/blog-posts", label: "blog post", procs: p.BlogPosts,
			byKey: keyed(p.BlogPosts.GetPublishedBySlug),
			admin: func(r chi.Router) { r.Post("/{id}/toggle-published", h.TogglePublished) },
		},
		&resource[model.JobPosition, service.JobPositionPatch]{
			path: "/job-positions", label: "job position", procs: p.JobPositions,
			byKey: keyed(p.JobPositions.GetActiveByKey),
		},
		&resource[model.HeroSection, service.HeroSectionPatch]{
			path: "/hero-sections", label: "hero section", procs: p.HeroSections,
			byKey: keyed(p.HeroSections.GetByPage),
		},
		&resource[model.Page, service.PagePatch]{
			path: "/pages", label: "page", procs: p.Pages,
			byKey: keyed(p.Pages.GetPublishedBySlug),
		},
	}
}

// HeroByPage handles GET /api/v1/hero/{page}.
func (h *Handler) HeroByPage(w http.ResponseWriter, r *http.Request) {
	hero, err := h.p.HeroSections.GetByPage(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		writeServiceError(w, r, "hero section", err)
		return
	}
	if hero == nil {
		WriteNotFound(w, "Hero section not found")
		return
	}
	WriteSuccess(w, hero, nil)
}

// reorderRequest is the body of POST /admin/services/reorder.
type reorderRequest struct {
	Items []service.OrderUpdate `json:"items"`
}

// ReorderServices handles POST /api/v1/admin/services/reorder.
func (h *Handler) ReorderServices(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		WriteValidationError(w, map[string]string{"items": "is required"})
		return
	}
	if err := h.p.Services.Reorder(r.Context(), req.Items); err != nil {
		writeServiceError(w, r, "service", err)
		return
	}
	WriteSuccess(w, map[string]int{"updated": len(req.Items)}, nil)
}

// TogglePublished handles POST /api/v1/admin/blog-posts/{id}/toggle-published.
func (h *Handler) TogglePublished(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "blog post")
	if !ok {
		return
	}
	post, err := h.p.BlogPosts.TogglePublished(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "blog post", err)
		return
	}
	WriteSuccess(w, post, nil)
}
