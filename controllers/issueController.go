package controllers

import (
	"context"
	"net/http"
	"time"

	"spotfix-admin/middlewares"
	"spotfix-admin/models"
	"spotfix-admin/store"
	"spotfix-admin/views"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	msgLoadIssues   = "Error loading issues"
	msgLoadIssue    = "Error loading issue"
	msgUpdateFailed = "Error updating status"
	msgBadStatus    = "Invalid status"
)

// Handlers holds the dashboard's HTTP handlers
type Handlers struct {
	issues  store.IssueStore
	timeout time.Duration
}

// NewHandlers creates handlers backed by the given store. Every store call
// made while serving a request is bounded by timeout.
func NewHandlers(issues store.IssueStore, timeout time.Duration) *Handlers {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handlers{issues: issues, timeout: timeout}
}

type statusForm struct {
	Status string `form:"status" binding:"required"`
}

// ListIssues renders the dashboard: counters plus every issue, newest first
func (h *Handlers) ListIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	issues, err := h.issues.List(ctx)
	if err != nil {
		log.WithError(err).Error("Error fetching issues")
		renderError(c, http.StatusInternalServerError, msgLoadIssues)
		return
	}

	c.HTML(http.StatusOK, views.ListTemplate, views.NewListPage(issues))
}

// ShowIssue renders one issue with its status form
func (h *Handlers) ShowIssue(c *gin.Context) {
	h.renderDetail(c, c.Param("id"), http.StatusOK, "")
}

// UpdateStatus handles the status form. The target issue is always the one
// named by the route; the form only supplies the new status.
func (h *Handlers) UpdateStatus(c *gin.Context) {
	issueID := c.Param("id")

	var form statusForm
	if err := c.ShouldBind(&form); err != nil {
		log.WithError(err).WithField("issue_id", issueID).Warn("Invalid status form")
		h.renderDetail(c, issueID, http.StatusBadRequest, msgBadStatus)
		return
	}
	status, ok := models.ParseStatus(form.Status)
	if !ok {
		log.WithFields(log.Fields{"issue_id": issueID, "status": form.Status}).Warn("Rejected non-canonical status")
		h.renderDetail(c, issueID, http.StatusBadRequest, msgBadStatus)
		return
	}

	if err := h.applyStatusUpdate(c.Request.Context(), issueID, status, c.GetString(middlewares.OperatorKey)); err != nil {
		log.WithError(err).WithFields(log.Fields{"issue_id": issueID, "status": status}).Error("Error updating status")
		h.renderDetail(c, issueID, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// applyStatusUpdate writes status to the issue identified by issueID.
func (h *Handlers) applyStatusUpdate(ctx context.Context, issueID string, status models.Status, operator string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.issues.UpdateStatus(ctx, issueID, status); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"issue_id": issueID,
		"status":   status,
		"operator": operator,
	}).Info("Issue status updated")
	return nil
}

// renderDetail re-reads the issue and renders the detail page, or the
// generic error page when the read fails.
func (h *Handlers) renderDetail(c *gin.Context, issueID string, code int, notice string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	issue, err := h.issues.Get(ctx, issueID)
	if err != nil {
		log.WithError(err).WithField("issue_id", issueID).Error("Error fetching issue")
		if store.IsNotFound(err) {
			renderError(c, http.StatusNotFound, msgLoadIssue)
		} else {
			renderError(c, http.StatusInternalServerError, msgLoadIssue)
		}
		return
	}

	c.HTML(code, views.DetailTemplate, views.NewDetailPage(issue, notice))
}

func renderError(c *gin.Context, code int, message string) {
	c.HTML(code, views.ErrorTemplate, views.ErrorPage{Message: message})
}
