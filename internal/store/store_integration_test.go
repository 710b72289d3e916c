package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pepo-gtm/pepo/internal/store"
)

func TestPostgresArchive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		tcPostgres.WithDatabase("pepo"),
		tcPostgres.WithUsername("pepo"),
		tcPostgres.WithPassword("pepo"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp")),
	)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	if err != nil {
		t.Fatalf("postgres host: %v", err)
	}
	port, err := pgC.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("postgres port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://pepo:pepo@%s:%s/pepo?sslmode=disable", host, port.Port())

	if err := store.Migrate("file://../../migrations", dsn, "up", 0); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	defer st.Close()

	rec := store.RunRecord{
		ID:        "run-int-1",
		Goal:      "lead_list",
		Summary:   "Integration run",
		Cost:      0.1,
		Duration:  30 * time.Second,
		Result:    []byte(`{"run_id":"run-int-1"}`),
		CreatedAt: time.Now().UTC(),
	}
	if err := st.SaveRun(ctx, rec); err != nil {
		t.Fatalf("save run: %v", err)
	}

	got, err := st.GetRun(ctx, "run-int-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Goal != "lead_list" || got.Duration != 30*time.Second {
		t.Fatalf("run did not round-trip: %+v", got)
	}

	// Upsert replaces the summary.
	rec.Summary = "Updated"
	if err := st.SaveRun(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = st.GetRun(ctx, "run-int-1")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Summary != "Updated" {
		t.Fatalf("upsert did not replace summary: %q", got.Summary)
	}

	runs, err := st.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	if _, err := st.GetRun(ctx, "nope"); err != store.ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
