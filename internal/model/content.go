// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Service is a contact-center service offering shown on the marketing site.
type Service struct {
	ID               int64      `json:"id"`
	Slug             string     `json:"slug" validate:"required,slug,max=200"`
	Title            string     `json:"title" validate:"required,max=200"`
	ShortDescription string     `json:"shortDescription" validate:"max=500"`
	Description      string     `json:"description"`
	Icon             string     `json:"icon" validate:"max=100"`
	ImageURL         string     `json:"imageUrl" validate:"omitempty,max=2048"`
	Features         StringList `json:"features"`
	Order            int        `json:"order" validate:"gte=0"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Metric is a headline figure ("24/7", "98%") on the home page.
type Metric struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label" validate:"required,max=200"`
	Value     string    `json:"value" validate:"required,max=50"`
	Suffix    string    `json:"suffix" validate:"max=20"`
	Icon      string    `json:"icon" validate:"max=100"`
	Order     int       `json:"order" validate:"gte=0"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Testimonial is a client quote with a 1-5 star rating.
type Testimonial struct {
	ID         int64     `json:"id"`
	ClientName string    `json:"clientName" validate:"required,max=200"`
	ClientRole string    `json:"clientRole" validate:"max=200"`
	Company    string    `json:"company" validate:"max=200"`
	Content    string    `json:"content" validate:"required,min=10"`
	Rating     int       `json:"rating" validate:"min=1,max=5"`
	AvatarURL  string    `json:"avatarUrl" validate:"max=2048"`
	Order      int       `json:"order" validate:"gte=0"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Client is a customer logo in the "trusted by" strip.
type Client struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required,max=200"`
	LogoURL    string    `json:"logoUrl" validate:"max=2048"`
	WebsiteURL string    `json:"websiteUrl" validate:"omitempty,url"`
	Industry   string    `json:"industry" validate:"max=100"`
	Order      int       `json:"order" validate:"gte=0"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Certification is a compliance badge (ISO, PCI DSS, ...).
type Certification struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Issuer      string    `json:"issuer" validate:"max=200"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl" validate:"max=2048"`
	Order       int       `json:"order" validate:"gte=0"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Office is a physical location of the company.
type Office struct {
	ID             int64     `json:"id"`
	City           string    `json:"city" validate:"required,max=100"`
	Country        string    `json:"country" validate:"required,max=100"`
	Address        string    `json:"address" validate:"max=500"`
	Phone          string    `json:"phone" validate:"max=50"`
	Email          string    `json:"email" validate:"omitempty,email"`
	Timezone       string    `json:"timezone" validate:"max=64"`
	ImageURL       string    `json:"imageUrl" validate:"max=2048"`
	IsHeadquarters bool      `json:"isHeadquarters"`
	Order          int       `json:"order" validate:"gte=0"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Benefit is an employee perk listed on the careers page.
type Benefit struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" validate:"max=100"`
	Order       int       `json:"order" validate:"gte=0"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Value is a company value listed on the about page.
type Value struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" validate:"max=100"`
	Order       int       `json:"order" validate:"gte=0"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TeamMember is a person on the leadership/team page.
type TeamMember struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Role        string    `json:"role" validate:"required,max=200"`
	Department  string    `json:"department" validate:"max=100"`
	Bio         string    `json:"bio"`
	PhotoURL    string    `json:"photoUrl" validate:"max=2048"`
	LinkedInURL string    `json:"linkedinUrl" validate:"omitempty,url"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Order       int       `json:"order" validate:"gte=0"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HeroSection is the banner at the top of a site page, one per page name.
type HeroSection struct {
	ID              int64     `json:"id"`
	Page            string    `json:"page" validate:"required,slug,max=100"`
	Title           string    `json:"title" validate:"required,max=200"`
	Subtitle        string    `json:"subtitle" validate:"max=500"`
	CTAText         string    `json:"ctaText" validate:"max=100"`
	CTALink         string    `json:"ctaLink" validate:"max=2048"`
	BackgroundImage string    `json:"backgroundImage" validate:"max=2048"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
