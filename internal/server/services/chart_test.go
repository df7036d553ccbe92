package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/bandroomhq/bandroom/internal/common"
	sc "github.com/bandroomhq/bandroom/internal/server/config"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeChartsRepo struct {
	charts.Repository

	charts    []*models.Chart
	getResult *models.Chart
	getErr    error

	created   *models.Chart
	createErr error

	deleted   []string
	deleteErr error
}

func (f *fakeChartsRepo) Create(ctx context.Context, chart *models.Chart) (*models.Chart, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *chart
	created.ID = "chart-created"
	f.created = &created
	return &created, nil
}

func (f *fakeChartsRepo) SelectBySong(ctx context.Context, bandID, songID string) ([]*models.Chart, error) {
	return f.charts, nil
}

func (f *fakeChartsRepo) GetByID(ctx context.Context, bandID, id string) (*models.Chart, error) {
	return f.getResult, f.getErr
}

func (f *fakeChartsRepo) Delete(ctx context.Context, bandID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeObjectStore struct {
	presignURL string
	presignErr error

	deletedKeys []string
	deleteErr   error
}

func (f *fakeObjectStore) PresignPut(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignURL + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

type fakeGuard struct {
	session *models.Session
	err     error
	calls   int
}

func (f *fakeGuard) EnsureValidSession(ctx context.Context) (*models.Session, error) {
	f.calls++
	return f.session, f.err
}

type chartFixture struct {
	service *ChartService
	tokens  *fakeAccessTokensRepo
	charts  *fakeChartsRepo
	store   *fakeObjectStore
	guard   *fakeGuard
}

func newChartFixture(guard *fakeGuard) *chartFixture {
	tokensRepo := &fakeAccessTokensRepo{}
	chartsRepo := &fakeChartsRepo{}
	store := &fakeObjectStore{presignURL: "https://minio.local/bandroom/"}
	rm := &fakeRepoManager{accessTokens: tokensRepo, charts: chartsRepo}
	cfg := &sc.Config{FileServeBaseURL: "https://api.bandroom.test"}

	service := NewChartService(nil, rm, guard, NewTokenService(nil, rm), store, cfg, testLogger())
	return &chartFixture{service: service, tokens: tokensRepo, charts: chartsRepo, store: store, guard: guard}
}

func pdfChart(id, path string) *models.Chart {
	return &models.Chart{ID: id, SongID: "song-1", BandID: "band-1", Type: models.ChartTypePDF, StoragePath: path, URL: "https://old/" + id}
}

// -------- tests --------

func TestRefreshChartURLs(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})

	pathA := chartPath("band-1", "a")
	pathB := chartPath("band-1", "b")
	input := []*models.Chart{
		pdfChart("c1", pathA),
		pdfChart("c2", pathB),
		{ID: "c3", Type: models.ChartTypeText, Content: "Am G F G", URL: ""},
	}

	out := fx.service.RefreshChartURLs(context.Background(), input)
	require.Len(t, out, 3)

	// One batch insert covering both file-backed paths.
	require.Equal(t, 1, fx.tokens.batchCalls)
	require.Len(t, fx.tokens.batches[0], 2)

	for _, c := range out[:2] {
		require.True(t, strings.HasPrefix(c.URL, "https://api.bandroom.test/functions/v1/serve-file-inline?"), "url %q", c.URL)
		parsed, err := url.Parse(c.URL)
		require.NoError(t, err)
		assert.Equal(t, c.StoragePath, parsed.Query().Get("path"))
		assert.NotEmpty(t, parsed.Query().Get("token"))
	}

	// The two charts point at different objects, so their tokens differ.
	u1, _ := url.Parse(out[0].URL)
	u2, _ := url.Parse(out[1].URL)
	assert.NotEqual(t, u1.Query().Get("token"), u2.Query().Get("token"))

	// Inline text charts pass through untouched.
	assert.Empty(t, out[2].URL)
}

func TestRefreshChartURLs_SharedPathGetsOneToken(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	shared := chartPath("band-1", "shared")

	out := fx.service.RefreshChartURLs(context.Background(), []*models.Chart{
		pdfChart("c1", shared),
		pdfChart("c2", shared),
	})

	require.Equal(t, 1, fx.tokens.batchCalls)
	require.Len(t, fx.tokens.batches[0], 1, "one token per distinct path")
	assert.Equal(t, out[0].URL, out[1].URL)
}

func TestRefreshChartURLs_NoSessionKeepsExistingURLs(t *testing.T) {
	fx := newChartFixture(&fakeGuard{err: common.ErrNoSession})

	input := []*models.Chart{pdfChart("c1", chartPath("band-1", "a"))}
	out := fx.service.RefreshChartURLs(context.Background(), input)

	require.Len(t, out, 1)
	assert.Equal(t, "https://old/c1", out[0].URL)
	assert.Zero(t, fx.tokens.batchCalls, "no tokens may be issued without a session")
}

func TestRefreshChartURLs_BatchFailureKeepsExistingURLs(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.tokens.batchErr = errors.New("db down")

	input := []*models.Chart{pdfChart("c1", chartPath("band-1", "a"))}
	out := fx.service.RefreshChartURLs(context.Background(), input)

	require.Len(t, out, 1)
	assert.Equal(t, "https://old/c1", out[0].URL)
}

func TestRefreshChartURLs_EmptyInput(t *testing.T) {
	guard := &fakeGuard{session: testSession()}
	fx := newChartFixture(guard)

	out := fx.service.RefreshChartURLs(context.Background(), nil)
	assert.Empty(t, out)
	assert.Zero(t, guard.calls, "empty input short-circuits before the guard")
}

func TestRefreshChartURLs_NoEligibleCharts(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})

	out := fx.service.RefreshChartURLs(context.Background(), []*models.Chart{
		{ID: "c1", Type: models.ChartTypeText, Content: "lyrics"},
		{ID: "c2", Type: models.ChartTypePDF, StoragePath: ""},
	})

	require.Len(t, out, 2)
	assert.Zero(t, fx.tokens.batchCalls)
}

func TestCreateChart_Text(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})

	res, err := fx.service.CreateChart(context.Background(), testSession(), CreateChartInput{
		SongID:  "song-1",
		Type:    models.ChartTypeText,
		Title:   "Verse chords",
		Content: "Am G F G",
	})
	require.NoError(t, err)

	assert.Empty(t, res.UploadURL)
	assert.Empty(t, res.Chart.StoragePath)
	assert.Equal(t, "Am G F G", res.Chart.Content)
	assert.Zero(t, fx.tokens.createCalls)
}

func TestCreateChart_PDF(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	session := testSession()

	res, err := fx.service.CreateChart(context.Background(), session, CreateChartInput{
		SongID: "song-1",
		Type:   models.ChartTypePDF,
		Title:  "Full score",
		Ext:    "pdf",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(res.Chart.StoragePath, "bands/band-1/charts/song-1/"), "path %q", res.Chart.StoragePath)
	assert.True(t, strings.HasSuffix(res.Chart.StoragePath, ".pdf"))
	assert.Equal(t, "https://minio.local/bandroom/"+res.Chart.StoragePath, res.UploadURL)

	// An upload-time token makes the chart servable right away.
	require.Equal(t, 1, fx.tokens.createCalls)
	assert.Contains(t, res.Chart.URL, "serve-file-inline")
}

func TestCreateChart_TokenFailureIsNotFatal(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.tokens.createErr = errors.New("db down")

	res, err := fx.service.CreateChart(context.Background(), testSession(), CreateChartInput{
		SongID: "song-1",
		Type:   models.ChartTypePDF,
		Ext:    "pdf",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.UploadURL)
	assert.Empty(t, res.Chart.URL, "chart stays unservable until the next refresh pass")
}

func TestCreateChart_PresignFailure(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.store.presignErr = errors.New("s3 down")

	_, err := fx.service.CreateChart(context.Background(), testSession(), CreateChartInput{
		SongID: "song-1",
		Type:   models.ChartTypePDF,
		Ext:    "pdf",
	})
	require.Error(t, err)
	assert.Nil(t, fx.charts.created, "no row without an upload url")
}

func TestDeleteChart(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	path := chartPath("band-1", "f1")
	fx.charts.getResult = pdfChart("c1", path)

	err := fx.service.DeleteChart(context.Background(), testSession(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, fx.store.deletedKeys)
	assert.Equal(t, []string{"c1"}, fx.charts.deleted)
}

func TestDeleteChart_TextChartSkipsObjectStore(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.charts.getResult = &models.Chart{ID: "c1", BandID: "band-1", Type: models.ChartTypeText}

	err := fx.service.DeleteChart(context.Background(), testSession(), "c1")
	require.NoError(t, err)
	assert.Empty(t, fx.store.deletedKeys)
	assert.Equal(t, []string{"c1"}, fx.charts.deleted)
}

func TestDeleteChart_ForeignPathAborts(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.charts.getResult = pdfChart("c1", chartPath("band-2", "f1"))

	err := fx.service.DeleteChart(context.Background(), testSession(), "c1")
	require.ErrorIs(t, err, common.ErrCrossTenant)
	assert.Empty(t, fx.store.deletedKeys, "object store untouched on ownership failure")
	assert.Empty(t, fx.charts.deleted)
}

func TestDeleteChart_NotFound(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	fx.charts.getErr = common.ErrorNotFound

	err := fx.service.DeleteChart(context.Background(), testSession(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListCharts(t *testing.T) {
	fx := newChartFixture(&fakeGuard{session: testSession()})
	path := chartPath("band-1", "f1")
	fx.charts.charts = []*models.Chart{pdfChart("c1", path)}

	out, err := fx.service.ListCharts(context.Background(), testSession(), "song-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].URL, fmt.Sprintf("path=%s", url.QueryEscape(path)))
}

var _ ObjectStore = (*fakeObjectStore)(nil)
var _ Guard = (*fakeGuard)(nil)
