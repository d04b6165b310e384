// Package handlers implements the HTTP request handlers for the SGA
// application. This file covers notifications: publishing, the per-user
// feed, the view/response ledger and the reporting endpoints.
package handlers

import (
	"errors"
	"strconv"

	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification requests.
type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
	feedRepo         *repository.FeedRepository
	viewRepo         *repository.ViewRepository
	responseRepo     *repository.ResponseRepository
	statsRepo        *repository.StatsRepository
}

// NewNotificationHandler creates a new NotificationHandler with its
// repository dependencies.
func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: repository.NewNotificationRepository(),
		feedRepo:         repository.NewFeedRepository(),
		viewRepo:         repository.NewViewRepository(),
		responseRepo:     repository.NewResponseRepository(),
		statsRepo:        repository.NewStatsRepository(),
	}
}

// List returns a company's notifications for the admin listing.
//
// Route: GET /api/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	companyID := middleware.Principal(c).CompanyID
	if q := c.Query("company_id"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
		}
		companyID = id
	}

	notifications, err := h.notificationRepo.List(c.Context(), companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(notifications)
}

// Get returns one notification with its targets and both ledgers embedded.
//
// Route: GET /api/notifications/:id
func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	notification, err := h.notificationRepo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}

	targets, err := h.notificationRepo.ListTargets(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	views, err := h.viewRepo.ListByNotification(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	responses, err := h.responseRepo.ListByNotification(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}

	return c.JSON(models.NotificationDetail{
		Notification: *notification,
		Targets:      targets,
		Views:        views,
		ViewCount:    len(views),
		Responses:    responses,
	})
}

// Pending returns the user's actionable inbox.
//
// Route: GET /api/notifications/user/:user_id/company/:company_id
func (h *NotificationHandler) Pending(c *fiber.Ctx) error {
	userID, companyID, err := feedParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.feedRepo.ListPending(c.Context(), userID, companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(items)
}

// History returns the user's viewed or responded notifications.
//
// Route: GET /api/notifications/user/:user_id/company/:company_id/viewed
func (h *NotificationHandler) History(c *fiber.Ctx) error {
	userID, companyID, err := feedParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.feedRepo.ListHistory(c.Context(), userID, companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(items)
}

// Stats returns the user's pending counts bucketed by department.
//
// Route: GET /api/notifications/user/:user_id/company/:company_id/stats
func (h *NotificationHandler) Stats(c *fiber.Ctx) error {
	userID, companyID, err := feedParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.statsRepo.PendingByDepartment(c.Context(), userID, companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(stats)
}

// Overview returns company-wide notification counters.
//
// Route: GET /api/notifications/overview
func (h *NotificationHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.statsRepo.CompanyOverview(c.Context(), middleware.Principal(c).CompanyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(overview)
}

func feedParams(c *fiber.Ctx) (userID, companyID int, err error) {
	if userID, err = pathID(c, "user_id"); err != nil {
		return 0, 0, err
	}
	if companyID, err = pathID(c, "company_id"); err != nil {
		return 0, 0, err
	}
	return userID, companyID, nil
}

type notificationRequest struct {
	CompanyID          int             `json:"company_id"`
	DepartmentID       *int            `json:"department_id"`
	Title              *string         `json:"title"`
	Description        *string         `json:"description"`
	Type               *string         `json:"type"`
	RequiresAcceptance *bool           `json:"requires_acceptance"`
	Targets            []models.Target `json:"targets"`
}

// Create publishes a notification together with its initial targets.
//
// Route: POST /api/notifications
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req notificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.CompanyID == 0 || req.Title == nil || *req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company_id and title are required"})
	}

	notification := &models.Notification{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		Title:        *req.Title,
		Type:         models.NotificationNormal,
	}
	if req.Description != nil {
		notification.Description = *req.Description
	}
	if req.Type != nil {
		notification.Type = *req.Type
	}
	if req.RequiresAcceptance != nil {
		notification.RequiresAcceptance = *req.RequiresAcceptance
	}

	if err := h.notificationRepo.Create(c.Context(), notification, req.Targets); err != nil {
		return repoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

// Update edits a notification and, when targets are present in the body,
// replaces the whole target set.
//
// Route: PUT /api/notifications/:id
func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req notificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	notification, err := h.notificationRepo.Update(c.Context(), id, repository.NotificationPatch{
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		RequiresAcceptance: req.RequiresAcceptance,
	})
	if err != nil {
		return repoError(c, err)
	}

	if req.Targets != nil {
		if err := h.notificationRepo.ReplaceTargets(c.Context(), id, req.Targets); err != nil {
			return repoError(c, err)
		}
	}

	return c.JSON(notification)
}

// Delete removes a notification. Its targets, views and responses cascade.
//
// Route: DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.notificationRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"message": "notification deleted"})
}

type viewRequest struct {
	UserID int `json:"user_id"`
}

// View records that the user opened the notification. Idempotent: the first
// call creates the row and returns it, repeat calls report already_viewed.
// Both cases are 200s.
//
// Route: POST /api/notifications/:id/view
func (h *NotificationHandler) View(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req viewRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	view, created, err := h.viewRepo.Create(c.Context(), id, req.UserID)
	if err != nil {
		return repoError(c, err)
	}
	if !created {
		return c.JSON(fiber.Map{"message": "already viewed"})
	}
	return c.JSON(view)
}

type respondRequest struct {
	UserID       int    `json:"user_id"`
	ResponseType string `json:"response_type"`
}

// Respond records or replaces the user's accept/reject decision. The first
// decision for a (notification, user) pair returns 201, a replacement 200;
// either way the body is the stored response.
//
// Route: POST /api/notifications/:id/respond
func (h *NotificationHandler) Respond(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req respondRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 || req.ResponseType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and response_type are required"})
	}

	_, err = h.responseRepo.GetForUser(c.Context(), id, req.UserID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return repoError(c, err)
	}
	first := errors.Is(err, models.ErrNotFound)

	response, err := h.responseRepo.Upsert(c.Context(), id, req.UserID, req.ResponseType)
	if err != nil {
		return repoError(c, err)
	}
	if first {
		return c.Status(fiber.StatusCreated).JSON(response)
	}
	return c.JSON(response)
}

// Views lists a notification's views for admin reporting, optionally grouped
// with ?group_by=department or ?group_by=group.
//
// Route: GET /api/notifications/:id/views
func (h *NotificationHandler) Views(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch c.Query("group_by") {
	case "department":
		counts, err := h.viewRepo.CountByDepartment(c.Context(), id)
		if err != nil {
			return repoError(c, err)
		}
		return c.JSON(counts)
	case "group":
		counts, err := h.viewRepo.CountByGroup(c.Context(), id)
		if err != nil {
			return repoError(c, err)
		}
		return c.JSON(counts)
	}

	views, err := h.viewRepo.ListByNotification(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(views)
}

// Audience returns the ids of every user the notification currently reaches,
// resolved from its target rows.
//
// Route: GET /api/notifications/:id/audience
func (h *NotificationHandler) Audience(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userIDs, err := h.notificationRepo.ResolveAudience(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"notification_id": id, "user_ids": userIDs, "count": len(userIDs)})
}

// UserViews lists every view a user has recorded, newest first.
//
// Route: GET /api/views/user/:user_id
func (h *NotificationHandler) UserViews(c *fiber.Ctx) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	views, err := h.viewRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(views)
}

// UserResponses lists every response a user has given, newest first.
//
// Route: GET /api/responses/user/:user_id
func (h *NotificationHandler) UserResponses(c *fiber.Ctx) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	responses, err := h.responseRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(responses)
}

// Responses lists a notification's responses for admin reporting.
//
// Route: GET /api/notifications/:id/responses
func (h *NotificationHandler) Responses(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	responses, err := h.responseRepo.ListByNotification(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(responses)
}
