package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("banner_scraper", rec)

	scoped.ReportBroken("scraper.search", "err")
	scoped.ReportWarning("listing.parse", 1)
	scoped.ReportDebug("fetch")
	scoped.ReportCount("listing.courses", 4)

	require.Equal(t, []string{"banner_scraper: scraper.search"}, rec.BrokenIds())
	require.Equal(t, "banner_scraper: listing.parse", rec.Warnings[0].Id)
	require.Equal(t, []any{1}, rec.Warnings[0].Params)
	require.Equal(t, "banner_scraper: fetch", rec.Debug[0].Id)
	require.Equal(t, int64(4), rec.Counts["banner_scraper: listing.courses"])
}

func TestNestedScopedAPI(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("inner", NewScopedAPI("outer", rec))
	scoped.ReportBroken("component.method")
	require.Equal(t, []string{"outer: inner: component.method"}, rec.BrokenIds())
}

func TestOtelAPIForwardsCounts(t *testing.T) {
	rec := NewRecorder()
	api, err := NewOtelAPI(rec)
	require.NoError(t, err)

	api.ReportCount("courses", 12)
	api.ReportBroken("broken")

	require.Equal(t, int64(12), rec.Counts["courses"])
	require.Equal(t, []string{"broken"}, rec.BrokenIds())
}

func TestSetupOtelWithoutEndpoints(t *testing.T) {
	out, err := SetupOtel(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, out.TracerProvider)
	require.Nil(t, out.MeterProvider)
	require.NoError(t, out.Shutdown(context.Background()))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	out.Write("1", "hello")

	contents, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}

func TestRecordProcessStats(t *testing.T) {
	rec := NewRecorder()
	RecordProcessStats(context.Background(), rec)

	require.Empty(t, rec.Warnings)
	require.Len(t, rec.Debug, 1)
	require.Equal(t, "process stats", rec.Debug[0].Id)
	require.Len(t, rec.Debug[0].Params, 3)
}
