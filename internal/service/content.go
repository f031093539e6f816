// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "github.com/olegiv/ccms-go/internal/model"

// set copies *src into *dst when src is non-nil.
func set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// setList copies a patch list into a StringList field.
func setList(dst *model.StringList, src *[]string) {
	if src != nil {
		*dst = model.StringList(*src)
	}
}

// ServicePatch is the writable subset of model.Service.
type ServicePatch struct {
	Slug             *string   `json:"slug"`
	Title            *string   `json:"title"`
	ShortDescription *string   `json:"shortDescription"`
	Description      *string   `json:"description"`
	Icon             *string   `json:"icon"`
	ImageURL         *string   `json:"imageUrl"`
	Features         *[]string `json:"features"`
	Order            *int      `json:"order"`
	IsActive         *bool     `json:"isActive"`
}

func (p ServicePatch) apply(s *model.Service) {
	set(&s.Slug, p.Slug)
	set(&s.Title, p.Title)
	set(&s.ShortDescription, p.ShortDescription)
	set(&s.Description, p.Description)
	set(&s.Icon, p.Icon)
	set(&s.ImageURL, p.ImageURL)
	setList(&s.Features, p.Features)
	set(&s.Order, p.Order)
	set(&s.IsActive, p.IsActive)
}

// MetricPatch is the writable subset of model.Metric.
type MetricPatch struct {
	Label    *string `json:"label"`
	Value    *string `json:"value"`
	Suffix   *string `json:"suffix"`
	Icon     *string `json:"icon"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

func (p MetricPatch) apply(m *model.Metric) {
	set(&m.Label, p.Label)
	set(&m.Value, p.Value)
	set(&m.Suffix, p.Suffix)
	set(&m.Icon, p.Icon)
	set(&m.Order, p.Order)
	set(&m.IsActive, p.IsActive)
}

// TestimonialPatch is the writable subset of model.Testimonial.
type TestimonialPatch struct {
	ClientName *string `json:"clientName"`
	ClientRole *string `json:"clientRole"`
	Company    *string `json:"company"`
	Content    *string `json:"content"`
	Rating     *int    `json:"rating"`
	AvatarURL  *string `json:"avatarUrl"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
}

func (p TestimonialPatch) apply(t *model.Testimonial) {
	set(&t.ClientName, p.ClientName)
	set(&t.ClientRole, p.ClientRole)
	set(&t.Company, p.Company)
	set(&t.Content, p.Content)
	set(&t.Rating, p.Rating)
	set(&t.AvatarURL, p.AvatarURL)
	set(&t.Order, p.Order)
	set(&t.IsActive, p.IsActive)
}

// ClientPatch is the writable subset of model.Client.
type ClientPatch struct {
	Name       *string `json:"name"`
	LogoURL    *string `json:"logoUrl"`
	WebsiteURL *string `json:"websiteUrl"`
	Industry   *string `json:"industry"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
}

func (p ClientPatch) apply(c *model.Client) {
	set(&c.Name, p.Name)
	set(&c.LogoURL, p.LogoURL)
	set(&c.WebsiteURL, p.WebsiteURL)
	set(&c.Industry, p.Industry)
	set(&c.Order, p.Order)
	set(&c.IsActive, p.IsActive)
}

// CertificationPatch is the writable subset of model.Certification.
type CertificationPatch struct {
	Name        *string `json:"name"`
	Issuer      *string `json:"issuer"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (p CertificationPatch) apply(c *model.Certification) {
	set(&c.Name, p.Name)
	set(&c.Issuer, p.Issuer)
	set(&c.Description, p.Description)
	set(&c.ImageURL, p.ImageURL)
	set(&c.Order, p.Order)
	set(&c.IsActive, p.IsActive)
}

// OfficePatch is the writable subset of model.Office.
type OfficePatch struct {
	City           *string `json:"city"`
	Country        *string `json:"country"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Timezone       *string `json:"timezone"`
	ImageURL       *string `json:"imageUrl"`
	IsHeadquarters *bool   `json:"isHeadquarters"`
	Order          *int    `json:"order"`
	IsActive       *bool   `json:"isActive"`
}

func (p OfficePatch) apply(o *model.Office) {
	set(&o.City, p.City)
	set(&o.Country, p.Country)
	set(&o.Address, p.Address)
	set(&o.Phone, p.Phone)
	set(&o.Email, p.Email)
	set(&o.Timezone, p.Timezone)
	set(&o.ImageURL, p.ImageURL)
	set(&o.IsHeadquarters, p.IsHeadquarters)
	set(&o.Order, p.Order)
	set(&o.IsActive, p.IsActive)
}

// BenefitPatch is the writable subset of model.Benefit.
type BenefitPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (p BenefitPatch) apply(b *model.Benefit) {
	set(&b.Title, p.Title)
	set(&b.Description, p.Description)
	set(&b.Icon, p.Icon)
	set(&b.Order, p.Order)
	set(&b.IsActive, p.IsActive)
}

// ValuePatch is the writable subset of model.Value.
type ValuePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (p ValuePatch) apply(v *model.Value) {
	set(&v.Title, p.Title)
	set(&v.Description, p.Description)
	set(&v.Icon, p.Icon)
	set(&v.Order, p.Order)
	set(&v.IsActive, p.IsActive)
}

// TeamMemberPatch is the writable subset of model.TeamMember.
type TeamMemberPatch struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	LinkedInURL *string `json:"linkedinUrl"`
	Email       *string `json:"email"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (p TeamMemberPatch) apply(m *model.TeamMember) {
	set(&m.Name, p.Name)
	set(&m.Role, p.Role)
	set(&m.Department, p.Department)
	set(&m.Bio, p.Bio)
	set(&m.PhotoURL, p.PhotoURL)
	set(&m.LinkedInURL, p.LinkedInURL)
	set(&m.Email, p.Email)
	set(&m.Order, p.Order)
	set(&m.IsActive, p.IsActive)
}

// HeroSectionPatch is the writable subset of model.HeroSection.
type HeroSectionPatch struct {
	Page            *string `json:"page"`
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	CTAText         *string `json:"ctaText"`
	CTALink         *string `json:"ctaLink"`
	BackgroundImage *string `json:"backgroundImage"`
	IsActive        *bool   `json:"isActive"`
}

func (p HeroSectionPatch) apply(h *model.HeroSection) {
	set(&h.Page, p.Page)
	set(&h.Title, p.Title)
	set(&h.Subtitle, p.Subtitle)
	set(&h.CTAText, p.CTAText)
	set(&h.CTALink, p.CTALink)
	set(&h.BackgroundImage, p.BackgroundImage)
	set(&h.IsActive, p.IsActive)
}

// PagePatch is the writable subset of model.Page.
type PagePatch struct {
	Slug            *string `json:"slug"`
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	IsActive        *bool   `json:"isActive"`
}

func (p PagePatch) apply(pg *model.Page) {
	set(&pg.Slug, p.Slug)
	set(&pg.Title, p.Title)
	set(&pg.Content, p.Content)
	set(&pg.MetaTitle, p.MetaTitle)
	set(&pg.MetaDescription, p.MetaDescription)
	set(&pg.IsActive, p.IsActive)
}

// BlogPostPatch is the writable subset of model.BlogPost. PublishedAt is
// not writable; it is derived from IsPublished.
type BlogPostPatch struct {
	Slug        *string   `json:"slug"`
	Title       *string   `json:"title"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	CoverImage  *string   `json:"coverImage"`
	Author      *string   `json:"author"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

func (p BlogPostPatch) apply(b *model.BlogPost) {
	set(&b.Slug, p.Slug)
	set(&b.Title, p.Title)
	set(&b.Excerpt, p.Excerpt)
	set(&b.Content, p.Content)
	set(&b.CoverImage, p.CoverImage)
	set(&b.Author, p.Author)
	set(&b.Category, p.Category)
	setList(&b.Tags, p.Tags)
	set(&b.IsPublished, p.IsPublished)
}

// JobPositionPatch is the writable subset of model.JobPosition.
type JobPositionPatch struct {
	Slug           *string   `json:"slug"`
	Title          *string   `json:"title"`
	Department     *string   `json:"department"`
	Location       *string   `json:"location"`
	EmploymentType *string   `json:"employmentType"`
	Description    *string   `json:"description"`
	Requirements   *[]string `json:"requirements"`
	Benefits       *[]string `json:"benefits"`
	SalaryRange    *string   `json:"salaryRange"`
	IsActive       *bool     `json:"isActive"`
}

func (p JobPositionPatch) apply(j *model.JobPosition) {
	set(&j.Slug, p.Slug)
	set(&j.Title, p.Title)
	set(&j.Department, p.Department)
	set(&j.Location, p.Location)
	set(&j.EmploymentType, p.EmploymentType)
	set(&j.Description, p.Description)
	setList(&j.Requirements, p.Requirements)
	setList(&j.Benefits, p.Benefits)
	set(&j.SalaryRange, p.SalaryRange)
	set(&j.IsActive, p.IsActive)
}
