package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/fileurl"
	"github.com/bandroomhq/bandroom/internal/logging"
	sc "github.com/bandroomhq/bandroom/internal/server/config"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
	"github.com/bandroomhq/bandroom/internal/storagepath"
)

// ChartService manages song charts: listing with fresh servable URLs,
// creation with an upload URL, and guarded deletion.
type ChartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       Guard
	tokens      *TokenService
	store       ObjectStore
	config      *sc.Config
	logger      logging.Logger
}

// NewChartService constructs a ChartService.
func NewChartService(db *sql.DB, m repomanager.RepositoryManager, guard Guard, tokens *TokenService, store ObjectStore, config *sc.Config, logger logging.Logger) *ChartService {
	return &ChartService{
		db:          db,
		repomanager: m,
		guard:       guard,
		tokens:      tokens,
		store:       store,
		config:      config,
		logger:      logger.With("module", "chart_service"),
	}
}

// RefreshChartURLs rewrites the URL of every file-backed chart in charts
// with a freshly issued access token. It always returns the full list:
// charts that are not file-backed pass through untouched, and every
// failure path degrades to "keep the existing URL", because a chart on a
// stale-but-possibly-valid token beats a broken page.
//
// Within one pass, session validation strictly precedes token issuance,
// which strictly precedes URL rewriting. The session (and with it the
// active band) is read once at the start; nothing is cached across
// passes.
func (s *ChartService) RefreshChartURLs(ctx context.Context, charts []*models.Chart) []*models.Chart {
	if len(charts) == 0 {
		return charts
	}

	session, err := s.guard.EnsureValidSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "skipping chart url refresh, no valid session", "error", err)
		return charts
	}

	var eligible []*models.Chart
	for _, c := range charts {
		if c.StoragePath != "" && c.Type.NeedsAccessToken() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return charts
	}

	// Two charts may reference the same object; issue one token per
	// distinct path, not per chart.
	seen := make(map[string]struct{}, len(eligible))
	paths := make([]string, 0, len(eligible))
	for _, c := range eligible {
		if _, ok := seen[c.StoragePath]; ok {
			continue
		}
		seen[c.StoragePath] = struct{}{}
		paths = append(paths, c.StoragePath)
	}

	issued, err := s.tokens.IssueBatch(ctx, session, paths)
	if err != nil || len(issued) == 0 {
		s.logger.Error(ctx, "batch token issue failed, keeping existing urls",
			"paths", len(paths), "error", err)
		return charts
	}

	failed := 0
	for _, c := range eligible {
		token, ok := issued[c.StoragePath]
		if !ok {
			// Not expected given the all-or-nothing batch, handled
			// defensively: keep the previous URL.
			failed++
			continue
		}
		c.URL = fileurl.Build(s.config.FileServeBaseURL, c.StoragePath, token.Token)
	}
	if failed > 0 {
		s.logger.Warn(ctx, "some chart urls were not refreshed",
			"failed", failed, "total", len(eligible))
	}

	return charts
}

// ListCharts returns a song's charts with servable URLs.
func (s *ChartService) ListCharts(ctx context.Context, session *models.Session, songID string) ([]*models.Chart, error) {
	repo := s.repomanager.Charts(s.db)
	charts, err := repo.SelectBySong(ctx, session.BandID, songID)
	if err != nil {
		return nil, fmt.Errorf("error listing charts: %w", err)
	}
	return s.RefreshChartURLs(ctx, charts), nil
}

// CreateChartInput describes a new chart.
type CreateChartInput struct {
	SongID  string
	Type    models.ChartType
	Title   string
	Content string
	// Ext is the file extension for file-backed charts, e.g. "pdf".
	Ext string
}

// CreateChartResult is the stored chart plus, for file-backed charts, a
// presigned URL the client must PUT the file to.
type CreateChartResult struct {
	Chart     *models.Chart
	UploadURL string
}

// CreateChart records a chart. TEXT charts carry their content inline
// and are complete immediately. File-backed charts get a canonical
// storage path under the session's band, a presigned upload URL, and an
// upload-time access token so the file is servable as soon as the PUT
// completes.
func (s *ChartService) CreateChart(ctx context.Context, session *models.Session, in CreateChartInput) (*CreateChartResult, error) {
	chart := &models.Chart{
		SongID: in.SongID,
		BandID: session.BandID,
		Type:   in.Type,
		Title:  in.Title,
	}

	var uploadURL string
	if in.Type == models.ChartTypeText {
		chart.Content = in.Content
	} else {
		path := storagepath.New(session.BandID, storagepath.FileTypeChart, in.SongID, in.Ext)
		chart.StoragePath = path.String()

		var err error
		uploadURL, err = s.store.PresignPut(ctx, chart.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("error presigning upload: %w", err)
		}
	}

	repo := s.repomanager.Charts(s.db)
	created, err := repo.Create(ctx, chart)
	if err != nil {
		return nil, fmt.Errorf("error creating chart: %w", err)
	}

	if created.StoragePath != "" {
		token, err := s.tokens.IssueOne(ctx, session, created.StoragePath)
		if err != nil {
			// The next refresh pass will mint a token; the chart is
			// just not immediately servable.
			s.logger.Warn(ctx, "upload-time token issue failed", "error", err)
		} else {
			created.URL = fileurl.Build(s.config.FileServeBaseURL, created.StoragePath, token.Token)
		}
	}

	return &CreateChartResult{Chart: created, UploadURL: uploadURL}, nil
}

// DeleteChart removes a chart and, for file-backed charts, its object.
// The storage path stored on the record originally came from a client
// upload, so it is re-checked against the session's band before the
// object store is touched. An ownership failure is fatal and propagates;
// nothing is deleted.
func (s *ChartService) DeleteChart(ctx context.Context, session *models.Session, chartID string) error {
	repo := s.repomanager.Charts(s.db)

	chart, err := repo.GetByID(ctx, session.BandID, chartID)
	if err != nil {
		return fmt.Errorf("error getting chart: %w", err)
	}

	if chart.StoragePath != "" {
		if err := storagepath.ValidateOwnership(chart.StoragePath, session.BandID); err != nil {
			return err
		}
		if err := s.store.Delete(ctx, chart.StoragePath); err != nil {
			return fmt.Errorf("error deleting object: %w", err)
		}
	}

	if err := repo.Delete(ctx, session.BandID, chartID); err != nil {
		return fmt.Errorf("error deleting chart: %w", err)
	}
	return nil
}
