package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/server"
	"github.com/pepo-gtm/pepo/internal/store"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:   "pepo",
		Short: "Autonomous business development research agent",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (JSON)")

	var workflowFile string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run workflows (interactive menu, or --file for a workflow spec)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(config.LoadConfig(cfgPath))
			if err != nil {
				return err
			}
			if workflowFile != "" {
				spec, err := loadWorkflowFile(workflowFile)
				if err != nil {
					return err
				}
				runWorkflow(a, spec)
				return nil
			}
			return interactive(a)
		},
	}
	run.Flags().StringVar(&workflowFile, "file", "", "JSON workflow spec to run non-interactively")

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Run the persisted daily plan's due tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(config.LoadConfig(cfgPath))
			if err != nil {
				return err
			}
			return runDailyPlan(a, os.Stdout)
		},
	}

	onboard := &cobra.Command{
		Use:   "onboard",
		Short: "Collect the business profile and generate a daily plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(config.LoadConfig(cfgPath))
			if err != nil {
				return err
			}
			return runOnboarding(a, bufio.NewReader(os.Stdin), os.Stdout)
		},
	}

	var serveAddr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			archive, err := openArchive(ctx, cfg)
			if err != nil {
				return err
			}
			defer archive.Close()
			index, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer index.Close()

			e := server.New(server.Deps{
				Config:    cfg,
				Archive:   archive,
				Index:     index,
				Runner:    a.agent,
				Profiles:  a.profiles,
				Planner:   a.planner,
				Telemetry: a.tele,
			})

			if cfg.Scheduler.Enabled {
				sched := server.NewScheduler(a.profiles, a.agent, archive, index, a.rdb)
				if cfg.Scheduler.Interval > 0 {
					sched.Interval = cfg.Scheduler.Interval
				}
				if cfg.Scheduler.LockTTL > 0 {
					sched.LockTTL = cfg.Scheduler.LockTTL
				}
				sched.Start()
				defer close(sched.Stop)
			}

			if serveAddr == "" {
				serveAddr = cfg.Server.Address
			}
			return e.Start(serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")

	var migDir string
	var direction string
	var steps int
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			if !cfg.Storage.Postgres.Configured() {
				return fmt.Errorf("postgres not configured (storage.postgres)")
			}
			return store.Migrate(migDir, cfg.Storage.Postgres.DSN(), direction, steps)
		},
	}
	migrate.Flags().StringVar(&migDir, "dir", "file://migrations", "migrations source (file://migrations)")
	migrate.Flags().StringVar(&direction, "direction", "up", "up or down")
	migrate.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")

	root.AddCommand(run, daily, onboard, serve, migrate)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
