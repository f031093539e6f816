// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Page is a free-form markdown page (privacy policy, terms, about).
type Page struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug" validate:"required,slug,max=200"`
	Title           string    `json:"title" validate:"required,max=200"`
	Content         string    `json:"content"`
	MetaTitle       string    `json:"metaTitle" validate:"max=200"`
	MetaDescription string    `json:"metaDescription" validate:"max=500"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RenderedPage is a page with its markdown content rendered to sanitised HTML.
type RenderedPage struct {
	Page
	ContentHTML string `json:"contentHtml"`
}

// BlogPost is an article on the company blog.
// PublishedAt is set the first time the post is published and never changes afterwards.
type BlogPost struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug" validate:"required,slug,max=200"`
	Title       string     `json:"title" validate:"required,max=200"`
	Excerpt     string     `json:"excerpt" validate:"max=1000"`
	Content     string     `json:"content" validate:"required"`
	CoverImage  string     `json:"coverImage" validate:"max=2048"`
	Author      string     `json:"author" validate:"max=200"`
	Category    string     `json:"category" validate:"max=100"`
	Tags        StringList `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RenderedPost is a published post with its content rendered to sanitised HTML.
type RenderedPost struct {
	BlogPost
	ContentHTML string `json:"contentHtml"`
}

// Employment types for job positions.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// JobPosition is an open vacancy on the careers page.
type JobPosition struct {
	ID             int64      `json:"id"`
	Slug           string     `json:"slug" validate:"required,slug,max=200"`
	Title          string     `json:"title" validate:"required,max=200"`
	Department     string     `json:"department" validate:"required,max=100"`
	Location       string     `json:"location" validate:"required,max=200"`
	EmploymentType string     `json:"employmentType" validate:"oneof=full-time part-time contract internship"`
	Description    string     `json:"description" validate:"required"`
	Requirements   StringList `json:"requirements"`
	Benefits       StringList `json:"benefits"`
	SalaryRange    string     `json:"salaryRange" validate:"max=100"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
