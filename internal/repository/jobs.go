package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dwa/backend/internal/model"
)

// JobRepository stores postings in the jobs table.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository returns a repository over pool.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `
	id, url, job_title, employer, excerpt, content, post_date, expiry_date,
	type, duration, location_lat, location_lon, derived_lat, derived_lon,
	region, stateprov, wage_value, wage_unit, harmonized_wage,
	nocs_2021, major_group_2021, naics, skill_names,
	category, sector, noc_code, naics_code, created_at, updated_at`

const newestFirst = ` ORDER BY post_date DESC NULLS LAST, id DESC`

// UpsertJob inserts job or, when a row with the same url exists, overwrites
// it in place. job.ID and the timestamps are filled from the stored row.
func (r *JobRepository) UpsertJob(ctx context.Context, job *model.JobPosting) (bool, error) {
	if job.URL == "" {
		return false, ErrMissingURL
	}

	locLat, locLon := splitPoint(job.Location)
	derLat, derLon := splitPoint(job.DerivedLocation)

	var inserted bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO jobs (
		   url, job_title, employer, excerpt, content, post_date, expiry_date,
		   type, duration, location_lat, location_lon, derived_lat, derived_lon,
		   region, stateprov, wage_value, wage_unit, harmonized_wage,
		   nocs_2021, major_group_2021, naics, skill_names,
		   category, sector, noc_code, naics_code
		 ) VALUES (
		   $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		   $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		 )
		 ON CONFLICT (url) DO UPDATE SET
		   job_title        = EXCLUDED.job_title,
		   employer         = EXCLUDED.employer,
		   excerpt          = EXCLUDED.excerpt,
		   content          = EXCLUDED.content,
		   post_date        = EXCLUDED.post_date,
		   expiry_date      = EXCLUDED.expiry_date,
		   type             = EXCLUDED.type,
		   duration         = EXCLUDED.duration,
		   location_lat     = EXCLUDED.location_lat,
		   location_lon     = EXCLUDED.location_lon,
		   derived_lat      = EXCLUDED.derived_lat,
		   derived_lon      = EXCLUDED.derived_lon,
		   region           = EXCLUDED.region,
		   stateprov        = EXCLUDED.stateprov,
		   wage_value       = EXCLUDED.wage_value,
		   wage_unit        = EXCLUDED.wage_unit,
		   harmonized_wage  = EXCLUDED.harmonized_wage,
		   nocs_2021        = EXCLUDED.nocs_2021,
		   major_group_2021 = EXCLUDED.major_group_2021,
		   naics            = EXCLUDED.naics,
		   skill_names      = EXCLUDED.skill_names,
		   category         = EXCLUDED.category,
		   sector           = EXCLUDED.sector,
		   noc_code         = EXCLUDED.noc_code,
		   naics_code       = EXCLUDED.naics_code,
		   updated_at       = NOW()
		 RETURNING id, created_at, updated_at, (xmax = 0)`,
		job.URL, job.JobTitle, job.Employer, job.Excerpt, job.Content, job.PostDate, job.ExpiryDate,
		job.Type, job.Duration, locLat, locLon, derLat, derLon,
		job.Region, job.StateProv, job.WageValue, job.WageUnit, job.HarmonizedWage,
		nonNil(job.NOCs), nonNil(job.MajorGroups), nonNil(job.NAICS), nonNil(job.SkillNames),
		orOther(job.Category), orOther(job.Sector), job.NOCCode, job.NAICSCode,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("upsertJob: %w", err)
	}
	return inserted, nil
}

// ListJobs returns every posting, newest post_date first.
func (r *JobRepository) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	return r.queryJobs(ctx, "listJobs", `SELECT `+jobColumns+` FROM jobs`+newestFirst)
}

// JobsByCategory returns up to limit postings of category, newest first.
func (r *JobRepository) JobsByCategory(ctx context.Context, category string, limit int) ([]model.JobPosting, error) {
	return r.queryJobs(ctx, "jobsByCategory",
		`SELECT `+jobColumns+` FROM jobs WHERE category = $1`+newestFirst+` LIMIT $2`,
		category, limit)
}

// MapJobs returns the postings that carry a primary or derived coordinate.
func (r *JobRepository) MapJobs(ctx context.Context) ([]model.JobPosting, error) {
	return r.queryJobs(ctx, "mapJobs",
		`SELECT `+jobColumns+` FROM jobs
		 WHERE (location_lat IS NOT NULL AND location_lon IS NOT NULL)
		    OR (derived_lat IS NOT NULL AND derived_lon IS NOT NULL)`+newestFirst)
}

// SearchJobs matches query case-insensitively as a substring of the title,
// employer or excerpt. page is 1-based. total counts every match.
func (r *JobRepository) SearchJobs(ctx context.Context, query string, page, limit int) ([]model.JobPosting, int, error) {
	const where = ` WHERE job_title ILIKE $1 OR employer ILIKE $1 OR excerpt ILIKE $1`
	pattern := "%" + escapeLike(query) + "%"

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("searchJobs count: %w", err)
	}

	jobs, err := r.queryJobs(ctx, "searchJobs",
		`SELECT `+jobColumns+` FROM jobs`+where+newestFirst+` OFFSET $2 LIMIT $3`,
		pattern, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// CategoryGroups aggregates postings by (category, sector), largest first.
func (r *JobRepository) CategoryGroups(ctx context.Context) ([]model.CategoryGroup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, sector, COUNT(*),
		        COALESCE(ARRAY_AGG(DISTINCT noc_code) FILTER (WHERE noc_code <> ''), '{}'),
		        COALESCE(ARRAY_AGG(DISTINCT naics_code) FILTER (WHERE naics_code <> ''), '{}')
		 FROM jobs
		 GROUP BY category, sector
		 ORDER BY COUNT(*) DESC, category, sector`)
	if err != nil {
		return nil, fmt.Errorf("categoryGroups query: %w", err)
	}
	defer rows.Close()

	groups := make([]model.CategoryGroup, 0)
	for rows.Next() {
		var g model.CategoryGroup
		if err := rows.Scan(&g.Category, &g.Sector, &g.Count, &g.NOCCodes, &g.NAICSCodes); err != nil {
			return nil, fmt.Errorf("categoryGroups scan: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Ping checks database connectivity.
func (r *JobRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *JobRepository) queryJobs(ctx context.Context, op, sql string, args ...any) ([]model.JobPosting, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", op, err)
	}
	defer rows.Close()

	jobs := make([]model.JobPosting, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (model.JobPosting, error) {
	var (
		j                      model.JobPosting
		locLat, locLon         *float64
		derivedLat, derivedLon *float64
	)
	err := row.Scan(
		&j.ID, &j.URL, &j.JobTitle, &j.Employer, &j.Excerpt, &j.Content, &j.PostDate, &j.ExpiryDate,
		&j.Type, &j.Duration, &locLat, &locLon, &derivedLat, &derivedLon,
		&j.Region, &j.StateProv, &j.WageValue, &j.WageUnit, &j.HarmonizedWage,
		&j.NOCs, &j.MajorGroups, &j.NAICS, &j.SkillNames,
		&j.Category, &j.Sector, &j.NOCCode, &j.NAICSCode, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return j, err
	}
	j.Location = joinPoint(locLat, locLon)
	j.DerivedLocation = joinPoint(derivedLat, derivedLon)
	return j, nil
}

func splitPoint(p *model.GeoPoint) (lat, lon *float64) {
	if p == nil {
		return nil, nil
	}
	la, lo := p.Lat, p.Lon
	return &la, &lo
}

func joinPoint(lat, lon *float64) *model.GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &model.GeoPoint{Lat: *lat, Lon: *lon}
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orOther(s string) string {
	if s == "" {
		return "Other"
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
