// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
	"github.com/olegiv/ccms-go/internal/util"
)

// Buckets created at setup.
const (
	CareerBucket = "career-applications"
	AssetsBucket = "company-assets"
)

const (
	// MaxCVSize is the largest CV a client may declare.
	MaxCVSize = 10 << 20

	// CVUploadExpiry is how long a presigned CV upload URL stays valid.
	CVUploadExpiry = time.Hour

	// CVDownloadExpiry is how long an admin CV download URL stays valid.
	CVDownloadExpiry = 15 * time.Minute

	cvPrefix = "cvs/"
)

// cvTypes maps accepted CV MIME types to their extension.
var cvTypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

// CVUploadRequest describes the file a candidate is about to upload. The
// size is declared by the client and is not enforced by the presigned URL.
type CVUploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// CVUpload is a presigned direct-upload target.
type CVUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ApplicationInput is the public job application form.
type ApplicationInput struct {
	PositionID    *int64 `json:"positionId"`
	PositionTitle string `json:"positionTitle"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LinkedInURL   string `json:"linkedinUrl"`
	CoverLetter   string `json:"coverLetter"`
	CVObjectKey   string `json:"cvObjectKey"`
	CVFileName    string `json:"cvFileName"`
}

// CareerApplications handles CV uploads and job applications.
type CareerApplications struct {
	q       *store.Queries
	objects storage.ObjectStore
	now     func() time.Time
}

// UploadURL validates the declared file and returns a presigned PUT URL for
// a fresh key of the form cvs/<unix millis>-<random>.<ext>.
func (c *CareerApplications) UploadURL(ctx context.Context, req CVUploadRequest) (*CVUpload, error) {
	ext, err := cvExtension(req.FileName, req.FileType)
	if err != nil {
		return nil, err
	}
	if req.FileSize <= 0 {
		return nil, invalid("fileSize", "is required")
	}
	if req.FileSize > MaxCVSize {
		return nil, fmt.Errorf("CV of %d bytes exceeds %d: %w", req.FileSize, MaxCVSize, ErrPayloadTooLarge)
	}

	now := c.now()
	key := fmt.Sprintf("%s%d-%s.%s", cvPrefix, now.UnixMilli(), uuid.NewString(), ext)
	url, err := c.objects.PresignedPutObject(ctx, CareerBucket, key, CVUploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning CV upload: %w", err)
	}
	return &CVUpload{UploadURL: url, ObjectKey: key, ExpiresAt: now.Add(CVUploadExpiry).UTC()}, nil
}

// cvExtension resolves the declared type, given as a MIME type or an
// extension, falling back to the file name.
func cvExtension(fileName, fileType string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(fileType))
	if ext, ok := cvTypes[t]; ok {
		return ext, nil
	}
	if t == "" {
		t = util.Ext(fileName)
	}
	t = strings.TrimPrefix(t, ".")
	switch t {
	case "pdf", "doc", "docx":
		return t, nil
	case "":
		return "", invalid("fileType", "is required")
	}
	return "", fmt.Errorf("CV type %q, want pdf, doc or docx: %w", fileType, ErrUnsupportedMediaType)
}

// Submit validates and stores an application with status pending. When
// PositionID is set it must name an existing position, whose title wins.
func (c *CareerApplications) Submit(ctx context.Context, in ApplicationInput) (*model.CareerApplication, error) {
	app := model.CareerApplication{
		PositionID:    in.PositionID,
		PositionTitle: strings.TrimSpace(in.PositionTitle),
		FullName:      strings.TrimSpace(in.FullName),
		Email:         normalizeEmail(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		LinkedInURL:   strings.TrimSpace(in.LinkedInURL),
		CoverLetter:   strings.TrimSpace(in.CoverLetter),
		CVObjectKey:   strings.TrimSpace(in.CVObjectKey),
		Status:        model.ApplicationPending,
	}
	if name, err := util.SanitizeFilename(in.CVFileName); err == nil {
		app.CVFileName = name
	}

	if app.PositionID != nil {
		pos, err := c.q.JobPositions().Get(ctx, *app.PositionID)
		if store.IsNotFound(err) {
			return nil, invalid("positionId", "unknown position")
		}
		if err != nil {
			return nil, storeErr("job position", err)
		}
		app.PositionTitle = pos.Title
	}

	if err := validateStruct(&app); err != nil {
		return nil, err
	}
	key, err := util.CleanObjectKey(app.CVObjectKey)
	if err != nil || !strings.HasPrefix(key, cvPrefix) {
		return nil, invalid("cvObjectKey", "is not a CV upload key")
	}
	app.CVObjectKey = key

	created, err := c.q.CareerApplications().Create(ctx, app)
	if err != nil {
		return nil, storeErr("career application", err)
	}
	return &created, nil
}

// List returns every application, newest first.
func (c *CareerApplications) List(ctx context.Context) ([]model.CareerApplication, error) {
	items, err := c.q.CareerApplications().List(ctx)
	return items, storeErr("career application", err)
}

// GetByID returns the application or ErrNotFound.
func (c *CareerApplications) GetByID(ctx context.Context, id int64) (*model.CareerApplication, error) {
	v, err := c.q.CareerApplications().Get(ctx, id)
	if err != nil {
		return nil, storeErr("career application", err)
	}
	return &v, nil
}

// UpdateStatus moves an application through the hiring pipeline.
func (c *CareerApplications) UpdateStatus(ctx context.Context, id int64, status string) (*model.CareerApplication, error) {
	if err := checkStatus(status, model.ApplicationPending, model.ApplicationReviewing,
		model.ApplicationInterview, model.ApplicationRejected, model.ApplicationHired); err != nil {
		return nil, err
	}
	v, err := c.q.CareerApplications().SetStatus(ctx, id, status)
	if err != nil {
		return nil, storeErr("career application", err)
	}
	return &v, nil
}

// CVDownloadURL returns a short-lived presigned GET for the CV of
// application id.
func (c *CareerApplications) CVDownloadURL(ctx context.Context, id int64) (string, error) {
	app, err := c.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := c.objects.PresignedGetObject(ctx, CareerBucket, app.CVObjectKey, CVDownloadExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning CV download: %w", err)
	}
	return url, nil
}

// Delete removes the application record. The CV object is kept.
func (c *CareerApplications) Delete(ctx context.Context, id int64) error {
	return storeErr("career application", c.q.CareerApplications().Delete(ctx, id))
}

// CountPending returns the number of applications nobody has looked at yet.
func (c *CareerApplications) CountPending(ctx context.Context) (int64, error) {
	n, err := c.q.CareerApplications().CountByStatus(ctx, model.ApplicationPending)
	return n, storeErr("career application", err)
}
