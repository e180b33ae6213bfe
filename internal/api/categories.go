package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dwa/backend/internal/classify"
	"dwa/backend/internal/model"
)

// categoryDetailLimit caps the postings shown on a category page.
const categoryDetailLimit = 20

// CategoryView is one entry of the category listing.
type CategoryView struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	Sector       string   `json:"sector"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	Salary       string   `json:"salary"`
	MedianSalary int      `json:"medianSalary"`
	NOCCodes     []string `json:"nocCodes"`
	NAICSCodes   []string `json:"naicsCodes"`
	IsRelated    bool     `json:"isRelated"`
}

func (h *Handler) listCategories(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached []CategoryView
		found, err := h.cache.Get(ctx, &cached)
		if err != nil {
			slog.Warn("category cache read failed", "err", err)
		} else if found {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	groups, err := h.jobs.CategoryGroups(ctx)
	if err != nil {
		internalError(c, "categoryGroups", err, "Failed to fetch job categories.")
		return
	}
	views := BuildCategories(groups)

	if h.cache != nil {
		if err := h.cache.Set(ctx, views); err != nil {
			slog.Warn("category cache write failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, views)
}

// BuildCategories enriches aggregation groups with metadata. IDs are 1-based
// in input order; a group is related when another group shares its sector.
func BuildCategories(groups []model.CategoryGroup) []CategoryView {
	perSector := make(map[string]int, len(groups))
	for _, g := range groups {
		perSector[orOther(g.Sector)]++
	}

	views := make([]CategoryView, 0, len(groups))
	for i, g := range groups {
		name, sector := orOther(g.Category), orOther(g.Sector)
		md := classify.For(name, sector)
		views = append(views, CategoryView{
			ID:           i + 1,
			Name:         name,
			Count:        g.Count,
			Sector:       sector,
			Description:  md.Description,
			Skills:       md.Skills,
			Salary:       md.SalaryRange,
			MedianSalary: md.MedianSalary,
			NOCCodes:     nonEmpty(g.NOCCodes),
			NAICSCodes:   nonEmpty(g.NAICSCodes),
			IsRelated:    perSector[sector] > 1,
		})
	}
	return views
}

func (h *Handler) categoryDetail(c *gin.Context) {
	name := c.Param("categoryName")

	jobs, err := h.jobs.JobsByCategory(c.Request.Context(), name, categoryDetailLimit)
	if err != nil {
		internalError(c, "jobsByCategory", err, "Failed to fetch category detail.")
		return
	}
	if len(jobs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found or has no jobs"})
		return
	}

	sector := orOther(jobs[0].Sector)
	md := classify.For(name, sector)

	var nocs, naics []string
	summaries := make([]jobSummary, 0, len(jobs))
	for i := range jobs {
		nocs = appendUnique(nocs, jobs[i].NOCCode)
		naics = appendUnique(naics, jobs[i].NAICSCode)
		summaries = append(summaries, summarize(&jobs[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         name,
		"count":        len(jobs),
		"sector":       sector,
		"description":  md.Description,
		"skills":       md.Skills,
		"salary":       md.SalaryRange,
		"medianSalary": md.MedianSalary,
		"nocCodes":     nonEmpty(nocs),
		"naicsCodes":   nonEmpty(naics),
		"jobs":         summaries,
	})
}

func orOther(s string) string {
	if s == "" {
		return classify.Other
	}
	return s
}

// nonEmpty drops blank codes and never returns nil, so JSON shows [].
func nonEmpty(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
