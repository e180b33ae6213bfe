package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dwa/backend/internal/ingest"
	"dwa/backend/internal/model"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		internalError(c, "listJobs", err, "Failed to fetch jobs.")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// searchJobs serves GET /api/jobs/search?query=&page=&limit=.
func (h *Handler) searchJobs(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page := positiveQueryInt(c, "page", 1)
	limit := min(positiveQueryInt(c, "limit", defaultSearchLimit), maxSearchLimit)

	jobs, total, err := h.jobs.SearchJobs(c.Request.Context(), query, page, limit)
	if err != nil {
		internalError(c, "searchJobs", err, "Failed to search jobs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": jobs,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"pages": (total + limit - 1) / limit,
		},
	})
}

type mapJob struct {
	ID        int64      `json:"_id"`
	JobTitle  string     `json:"job_title"`
	Employer  string     `json:"employer"`
	PostDate  *time.Time `json:"post_date"`
	URL       string     `json:"url"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	JobType   string     `json:"job_type"`
}

func (h *Handler) mapJobs(c *gin.Context) {
	jobs, err := h.jobs.MapJobs(c.Request.Context())
	if err != nil {
		internalError(c, "mapJobs", err, "Failed to fetch jobs for the map.")
		return
	}

	out := make([]mapJob, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		p, ok := j.Coordinates()
		if !ok {
			continue
		}
		out = append(out, mapJob{
			ID:        j.ID,
			JobTitle:  j.JobTitle,
			Employer:  j.Employer,
			PostDate:  j.PostDate,
			URL:       j.URL,
			Latitude:  p.Lat,
			Longitude: p.Lon,
			JobType:   JobType(j.JobTitle),
		})
	}
	c.JSON(http.StatusOK, gin.H{"jobs": out})
}

// JobType buckets a posting into FT, PT, Casual or Other from its title.
func JobType(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "full time"):
		return "FT"
	case strings.Contains(t, "part time"):
		return "PT"
	case strings.Contains(t, "casual"):
		return "Casual"
	default:
		return "Other"
	}
}

func (h *Handler) triggerFetch(c *gin.Context) {
	slog.Info("manual job fetch triggered")
	s, err := h.ingester.Run(c.Request.Context())
	if err != nil {
		writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Jobs fetched and saved successfully",
		"summary": s,
	})
}

func (h *Handler) testFetch(c *gin.Context) {
	if _, err := h.ingester.Run(c.Request.Context()); err != nil {
		writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job fetch succeeded. Check your database."})
}

func writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "An ingestion run is already in progress."})
	case errors.Is(err, ingest.ErrMissingAPIKey):
		slog.Error("ingestion not configured", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The jobs API key is not configured."})
	case errors.Is(err, ingest.ErrFetchTimeout):
		slog.Error("ingestion timed out", "err", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "The jobs API did not respond in time."})
	default:
		internalError(c, "ingest", err, "Failed to fetch jobs.")
	}
}

type jobSummary struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Employer string     `json:"employer"`
	Location string     `json:"location"`
	PostDate *time.Time `json:"postDate"`
	URL      string     `json:"url"`
	Type     string     `json:"type"`
}

func summarize(j *model.JobPosting) jobSummary {
	location := j.StateProv
	if j.Region != "" {
		location = j.Region + ", " + j.StateProv
	}
	return jobSummary{
		ID:       j.ID,
		Title:    j.JobTitle,
		Employer: j.Employer,
		Location: location,
		PostDate: j.PostDate,
		URL:      j.URL,
		Type:     j.Type,
	}
}

// positiveQueryInt returns the query parameter as an int, or def when it is
// absent, malformed or below 1.
func positiveQueryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// internalError logs err and answers 500 without leaking it.
func internalError(c *gin.Context, op string, err error, msg string) {
	slog.Error(op+" failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
