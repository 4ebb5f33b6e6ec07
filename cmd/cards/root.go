package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cards/internal/app"
	"github.com/goliatone/go-cards/internal/config"
	"github.com/goliatone/go-cards/internal/prompt"
)

type rootParams struct {
	configPath string
	addr       string
	variant    string
	seed       int64
}

func newRootCmd() *cobra.Command {
	params := &rootParams{}
	root := &cobra.Command{
		Use:           "cards",
		Short:         "Teacher and student cards rendered through projected row templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&params.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&params.variant, "variant", "", "theme variant")
	root.PersistentFlags().Int64Var(&params.seed, "seed", 0, "fake data seed (0 picks a random seed)")

	root.AddCommand(newServeCmd(params), newRenderCmd(params), newInteractiveCmd(params))
	return root
}

func newServeCmd(params *rootParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card board over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, params)
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&params.addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func newRenderCmd(params *rootParams) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the board HTML once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, params)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := a.Board().Page().Render(cmd.Context(), &buf); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.Logger.Info("board written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newInteractiveCmd(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Add, delete and render records from terminal prompts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, params)
			if err != nil {
				return err
			}
			session := &prompt.Session{
				Driver: prompt.NewSurveyDriver(cmd.OutOrStdout()),
				Board:  a.Board(),
				Out:    cmd.OutOrStdout(),
			}
			return session.Run(cmd.Context())
		},
	}
}

func buildApp(cmd *cobra.Command, params *rootParams) (*app.App, error) {
	cfg, err := config.Load(params.configPath)
	if err != nil {
		return nil, err
	}
	if params.addr != "" {
		cfg.Addr = params.addr
	}
	if params.variant != "" {
		cfg.Theme.Variant = params.variant
	}
	if params.seed != 0 {
		cfg.Seed = params.seed
	}
	return app.New(cfg, cmd.ErrOrStderr())
}
