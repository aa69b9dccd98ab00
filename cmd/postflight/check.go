package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/postflightdev/postflight/internal/config"
	"github.com/postflightdev/postflight/internal/health"
	"github.com/postflightdev/postflight/internal/logger"
	"github.com/postflightdev/postflight/internal/probe"
	"github.com/postflightdev/postflight/internal/prompt"
)

type checkOptions struct {
	Component   string
	ConfigPath  string
	Verbose     bool
	JSON        bool
	ExitOnError bool
	AssumeYes   bool
}

var checkCmdRunner = runCheck

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [component]",
		Short: "Run post-installation health checks against the target configuration",
		Long: `Check verifies the health of a freshly provisioned machine: SMART status
of the target disks, the LUKS container, the ZFS pool, the installed
system tree and the network link. Pass a component name (disks, luks,
zfs, system, network) to verify a single domain, or nothing to verify
them all.

Returns exit code 0 when every domain passes, exit code 1 when a domain
fails and --exit-on-error is set, and exit code 2 for configuration
problems.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Component = string(health.DomainAll)
			if len(args) == 1 {
				opts.Component = args[0]
			}
			opts.Verbose = root.verbose

			return checkCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the target configuration file (default "+config.DefaultPath+")")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the report in JSON format")
	cmd.Flags().BoolVar(&opts.ExitOnError, "exit-on-error", true, "Exit non-zero when a health domain fails")
	cmd.Flags().BoolVarP(&opts.AssumeYes, "assume-yes", "y", false, "Answer yes to interactive prompts")

	return cmd
}

func runCheck(opts checkOptions) error {
	domain, err := health.ParseDomain(opts.Component)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.JSON})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath
	}

	log.WithFields(map[string]interface{}{
		"component": string(domain),
		"config":    configPath,
	}).Info("Starting health verification")

	runner := health.NewRunner(buildCheckers(cfg, opts, log), log, opts.ExitOnError)

	report, runErr := runner.Run(context.Background(), domain)
	if report == nil {
		return runErr
	}

	if opts.JSON {
		printJSONReport(os.Stdout, report, configPath)
	} else {
		printReport(os.Stdout, report)
	}

	return runErr
}

// buildCheckers wires one checker per domain over a shared command runner.
func buildCheckers(cfg *config.Config, opts checkOptions, log *logger.Logger) []health.Checker {
	runner := probe.ExecRunner{}

	var confirm health.Confirmer = prompt.NewTerminal(os.Stdin, os.Stderr)
	if opts.AssumeYes {
		confirm = prompt.Auto(true)
	}

	return []health.Checker{
		health.NewDisksChecker(cfg.TargetDisks, probe.NewSMART(runner), probe.NewToolInstaller(runner), log),
		health.NewLUKSChecker(cfg.LUKSDevice, cfg.LUKSMappedName, probe.NewCryptsetup(runner), log),
		health.NewZFSChecker(cfg.ZFSPoolName, probe.NewZPool(runner), probe.NewZFSMounter(runner), confirm, log),
		health.NewSystemChecker(cfg.NewSystemMount, log),
		health.NewNetworkChecker(cfg.NetworkInterface, cfg.IPAddress, probe.NewNetIface(runner), log),
	}
}
