// Package ingest pulls postings from the jobs API, classifies them, and
// upserts them into the job store keyed on their URL.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"dwa/backend/internal/classify"
	"dwa/backend/internal/model"
)

// ErrRunInProgress is returned when another instance holds the run lock.
var ErrRunInProgress = errors.New("ingestion run already in progress")

// PageFetcher returns one page of raw postings.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, perPage int) ([]model.RawPosting, error)
}

// Store persists classified postings. UpsertJob reports whether the posting
// was newly inserted (false means an existing record with the same URL was
// updated).
type Store interface {
	UpsertJob(ctx context.Context, job *model.JobPosting) (inserted bool, err error)
}

// Locker provides cross-process run exclusivity. Acquire returns ok=false
// when the lock is held elsewhere.
type Locker interface {
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}

// Notifier is told about every run that reached the fetch stage.
type Notifier interface {
	RunCompleted(ctx context.Context, s Summary) error
}

// Summary describes one ingestion run.
type Summary struct {
	RunID      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Pages      int       `json:"pages"`
	Fetched    int       `json:"fetched"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

// Config tunes a Pipeline. Zero values fall back to the defaults below.
type Config struct {
	PageSize int
	MaxPages int
	Workers  int

	Locker   Locker
	Notifier Notifier
	Logger   *slog.Logger
}

const (
	defaultPageSize = 40
	defaultMaxPages = 1
	defaultWorkers  = 1
)

// Pipeline is the fetch, classify and upsert loop.
type Pipeline struct {
	fetcher PageFetcher
	store   Store
	cfg     Config
	log     *slog.Logger
	group   singleflight.Group
}

// NewPipeline constructs a Pipeline.
func NewPipeline(fetcher PageFetcher, store Store, cfg Config) *Pipeline {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		log:     logger.With("component", "ingest"),
	}
}

// Classify derives category, sector and the chosen codes from raw. It is a
// pure function of its input.
func Classify(raw model.RawPosting) model.JobPosting {
	nocCode := raw.NOCs.First()
	naicsCode := raw.NAICS.First()

	sector := classify.Sector(naicsCode)
	if sector == classify.Other {
		if s := strings.TrimSpace(raw.Sector); s != "" {
			sector = s
		}
	}

	return model.JobPosting{
		URL:             strings.TrimSpace(raw.URL),
		JobTitle:        raw.JobTitle,
		Employer:        raw.Employer,
		Excerpt:         raw.Excerpt,
		Content:         raw.Content,
		PostDate:        raw.PostDate.Ptr(),
		ExpiryDate:      raw.ExpiryDate.Ptr(),
		Type:            raw.Type,
		Duration:        raw.Duration,
		Location:        raw.Location.Point(),
		DerivedLocation: raw.Derived.Point(),
		Region:          raw.Region,
		StateProv:       raw.StateProv,
		WageValue:       raw.WageValue.Ptr(),
		WageUnit:        raw.WageUnit,
		HarmonizedWage:  raw.HarmonizedWage.Ptr(),
		NOCs:            raw.NOCs,
		MajorGroups:     raw.MajorGroups,
		NAICS:           raw.NAICS,
		Category:        classify.Occupation(nocCode),
		Sector:          sector,
		NOCCode:         nocCode,
		NAICSCode:       naicsCode,
		SkillNames:      raw.SkillNames,
	}
}

// Run performs one ingestion. Concurrent callers in this process share the
// in-flight run and its result. The shared run ignores the cancellation of
// whichever caller started it, so one departing caller cannot abort it for
// the others. A fetch failure aborts the run; postings already upserted stay
// persisted. Per-posting store failures are logged and counted in the
// summary.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runCtx := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do("ingest", func() (any, error) {
		return p.run(runCtx)
	})
	s, _ := v.(Summary)
	return s, err
}

func (p *Pipeline) run(ctx context.Context) (Summary, error) {
	s := Summary{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log := p.log.With("run_id", s.RunID)

	if p.cfg.Locker != nil {
		release, ok, err := p.cfg.Locker.Acquire(ctx)
		switch {
		case err != nil:
			log.Warn("run lock unavailable, continuing without it", "error", err)
		case !ok:
			s.FinishedAt = time.Now().UTC()
			log.Info("ingestion skipped, lock held by another instance")
			return s, ErrRunInProgress
		default:
			defer release()
		}
	}

	runErr := p.fetchAll(ctx, &s)
	s.FinishedAt = time.Now().UTC()

	attrs := []any{
		"pages", s.Pages,
		"fetched", s.Fetched,
		"inserted", s.Inserted,
		"updated", s.Updated,
		"failed", s.Failed,
		"skipped", s.Skipped,
		"duration", s.FinishedAt.Sub(s.StartedAt),
	}
	if runErr != nil {
		log.Error("ingestion run aborted", append(attrs, "error", runErr)...)
	} else {
		log.Info("ingestion run finished", attrs...)
	}

	if p.cfg.Notifier != nil {
		if err := p.cfg.Notifier.RunCompleted(ctx, s); err != nil {
			log.Warn("notify run completed", "error", err)
		}
	}
	return s, runErr
}

func (p *Pipeline) fetchAll(ctx context.Context, s *Summary) error {
	for page := 1; page <= p.cfg.MaxPages; page++ {
		raws, err := p.fetcher.FetchPage(ctx, page, p.cfg.PageSize)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", page, err)
		}
		s.Pages++
		s.Fetched += len(raws)

		p.upsertPage(ctx, raws, s)

		if len(raws) < p.cfg.PageSize {
			break
		}
	}
	return nil
}

func (p *Pipeline) upsertPage(ctx context.Context, raws []model.RawPosting, s *Summary) {
	var inserted, updated, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for _, raw := range raws {
		job := Classify(raw)
		if job.URL == "" {
			s.Skipped++
			p.log.Warn("posting has no url, skipping", "job_title", job.JobTitle)
			continue
		}
		g.Go(func() error {
			isNew, err := p.store.UpsertJob(ctx, &job)
			if err != nil {
				failed.Add(1)
				p.log.Warn("upsert posting", "url", job.URL, "error", err)
				return nil
			}
			if isNew {
				inserted.Add(1)
			} else {
				updated.Add(1)
			}
			p.log.Debug("saved posting", "job_title", job.JobTitle, "category", job.Category, "sector", job.Sector)
			return nil
		})
	}
	_ = g.Wait()

	s.Inserted += int(inserted.Load())
	s.Updated += int(updated.Load())
	s.Failed += int(failed.Load())
}
