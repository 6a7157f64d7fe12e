package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/backend/cpu"
	"github.com/born-ml/elementwise/backend/webgpu"
	"github.com/born-ml/elementwise/internal/config"
	"github.com/born-ml/elementwise/unary"
)

// app is the state shared by the subcommands, built once the flags are parsed.
type app struct {
	configPath string
	verbosity  int

	cfg      *config.Config
	registry *unary.Registry
	ops      *unary.Ops
	gpu      *webgpu.Backend
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "elementwise",
		Short: "Elementwise unary op dispatch",
		Long: `elementwise runs unary ops (trigonometric, exponential, rounding, gamma family,
clamping, ...) through the kernel table of the CPU and WebGPU backends.

Every op has a functional, an in-place and an out form; "apply" runs one of them on a
tensor given on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.gpu != nil {
				a.gpu.Release()
			}
			klog.Flush()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "elementwise.yaml", "path to the YAML configuration")
	root.PersistentFlags().IntVarP(&a.verbosity, "verbosity", "v", 0, "klog verbosity (2: registrations, 3: dispatch)")

	root.AddCommand(
		newVersionCmd(),
		newOpsCmd(a),
		newApplyCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and registers the backends.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Logging.Verbosity = a.verbosity
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := cfg.ApplyLogging(); err != nil {
		return err
	}
	a.cfg = cfg

	a.registry = unary.NewRegistry()
	cpu.NewWithConfig(cfg.Parallel).Register(a.registry)
	if cfg.Backends.WebGPU {
		gpu, err := webgpu.New()
		if err != nil {
			klog.Warningf("webgpu backend disabled: %v", err)
		} else {
			gpu.Register(a.registry)
			a.gpu = gpu
		}
	}
	a.ops = unary.New(a.registry, cfg.Unary())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "elementwise %s\n", version)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Prints the configuration obtained by reading --config on top of the defaults.
With --write, the configuration is also saved to the given path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			if write != "" {
				return a.cfg.Save(write)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "save the effective configuration to this path")
	return cmd
}
