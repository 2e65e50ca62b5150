package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"stratis/internal/actions"
)

const (
	annotationSkipConfig = "skipConfigLoad"
	annotationSkipBus    = "skipBus"
)

// handler is the action bound to one command path. inv.client is nil for
// commands annotated skipBus.
type handler func(ctx context.Context, inv *invocation) error

type invocation struct {
	cmd    *cobra.Command
	args   []string
	client *actions.Client
	cc     *commandContext
}

func (inv *invocation) out() *renderer {
	cfg := inv.cc.configValue()
	stdout := inv.cmd.OutOrStdout()
	return newRenderer(stdout, cfg.Output.Format, inv.cc.colorize(stdout))
}

// commandSpec declares one node of the command tree. Nodes without run are
// groups that only hold subcommands.
type commandSpec struct {
	path        []string
	args        string
	short       string
	long        string
	argCheck    cobra.PositionalArgs
	flags       func(*pflag.FlagSet)
	setup       func(*cobra.Command)
	annotations map[string]string
	run         handler
}

func (s commandSpec) key() string { return strings.Join(s.path, " ") }

var skipBus = map[string]string{annotationSkipBus: "true"}

// commandTable returns the full command grammar. It is rebuilt on every call
// so no caller can mutate a shared copy.
func commandTable() []commandSpec {
	return []commandSpec{
		{
			path:     []string{"create"},
			args:     "<pool> <device>...",
			short:    "Create a pool from one or more block devices",
			argCheck: cobra.MinimumNArgs(2),
			flags: func(fs *pflag.FlagSet) {
				fs.String("redundancy", actions.DefaultRedundancy, "Redundancy designation reported by `stratisd --redundancy`")
			},
			run: runCreatePool,
		},
		{
			path:     []string{"destroy"},
			args:     "<pool>",
			short:    "Destroy a pool",
			argCheck: cobra.ExactArgs(1),
			run:      runDestroyPool,
		},
		{
			path:     []string{"list"},
			short:    "List pools",
			argCheck: cobra.NoArgs,
			run:      runListPools,
		},
		{
			path:     []string{"rename"},
			args:     "<current> <new>",
			short:    "Rename a pool",
			argCheck: cobra.ExactArgs(2),
			run:      runRenamePool,
		},
		{
			path:  []string{"blockdev"},
			short: "Administer the block devices of an existing pool",
		},
		{
			path:     []string{"blockdev", "add"},
			args:     "<pool> <device>...",
			short:    "Add block devices to a pool",
			argCheck: cobra.MinimumNArgs(2),
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("cache", false, "Add the devices to the cache tier")
			},
			run: runBlockdevAdd,
		},
		{
			path:     []string{"blockdev", "list"},
			args:     "<pool>",
			short:    "List the block devices of a pool",
			argCheck: cobra.ExactArgs(1),
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("cache", false, "List the cache tier instead of the data tier")
			},
			run: runBlockdevList,
		},
		{
			path:     []string{"blockdev", "info"},
			args:     "<pool> <device>",
			short:    "Show one block device of a pool",
			argCheck: cobra.ExactArgs(2),
			run:      runBlockdevInfo,
		},
		{
			path:  []string{"filesystem"},
			short: "Administer the filesystems of an existing pool",
		},
		{
			path:     []string{"filesystem", "create"},
			args:     "<pool> <name>...",
			short:    "Create filesystems in a pool",
			argCheck: cobra.MinimumNArgs(2),
			run:      runFilesystemCreate,
		},
		{
			path:     []string{"filesystem", "list"},
			args:     "<pool>",
			short:    "List the filesystems of a pool",
			argCheck: cobra.ExactArgs(1),
			run:      runFilesystemList,
		},
		{
			path:     []string{"filesystem", "destroy"},
			args:     "<pool> <name>...",
			short:    "Destroy filesystems in a pool",
			argCheck: cobra.MinimumNArgs(2),
			run:      runFilesystemDestroy,
		},
		{
			path:     []string{"filesystem", "rename"},
			args:     "<pool> <current> <new>",
			short:    "Rename a filesystem",
			argCheck: cobra.ExactArgs(3),
			run:      runFilesystemRename,
		},
		{
			path:     []string{"stratisd"},
			short:    "Query the running stratisd",
			argCheck: cobra.NoArgs,
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("log-level", false, "Print the daemon log level")
				fs.Bool("redundancy", false, "Print the supported redundancy designations")
				fs.Bool("version", false, "Print the daemon version")
			},
			setup: func(cmd *cobra.Command) {
				cmd.MarkFlagsMutuallyExclusive("log-level", "redundancy", "version")
				cmd.MarkFlagsOneRequired("log-level", "redundancy", "version")
			},
			run: runStratisd,
		},
		{
			path:     []string{"describe-error"},
			args:     "[NAME|code]",
			short:    "Look up error codes published by stratisd",
			argCheck: cobra.MaximumNArgs(1),
			run:      runDescribeError,
		},
		{
			path:        []string{"config"},
			short:       "Configuration utilities",
			annotations: skipBus,
		},
		{
			path:     []string{"config", "init"},
			short:    "Create a sample configuration file",
			argCheck: cobra.NoArgs,
			flags: func(fs *pflag.FlagSet) {
				fs.StringP("path", "p", "", "Destination for the configuration file")
				fs.Bool("overwrite", false, "Overwrite existing configuration if present")
			},
			annotations: map[string]string{annotationSkipConfig: "true", annotationSkipBus: "true"},
			run:         runConfigInit,
		},
		{
			path:        []string{"config", "validate"},
			short:       "Validate the configuration file",
			argCheck:    cobra.NoArgs,
			annotations: map[string]string{annotationSkipConfig: "true", annotationSkipBus: "true"},
			run:         runConfigValidate,
		},
	}
}

// registry maps a space-joined command path to its spec.
type registry map[string]commandSpec

func newRegistry(specs []commandSpec) (registry, error) {
	reg := make(registry, len(specs))
	for _, spec := range specs {
		if len(spec.path) == 0 {
			return nil, fmt.Errorf("command with empty path")
		}
		key := spec.key()
		if _, dup := reg[key]; dup {
			return nil, fmt.Errorf("command %q declared twice", key)
		}
		reg[key] = spec
	}
	for key, spec := range reg {
		if len(spec.path) > 1 {
			parent := strings.Join(spec.path[:len(spec.path)-1], " ")
			if _, ok := reg[parent]; !ok {
				return nil, fmt.Errorf("command %q has no parent %q", key, parent)
			}
		}
	}
	return reg, nil
}

// lookup returns the handler bound to path.
func (r registry) lookup(path ...string) (handler, bool) {
	spec, ok := r[strings.Join(path, " ")]
	if !ok || spec.run == nil {
		return nil, false
	}
	return spec.run, true
}

// keys returns every command path, parents before children.
func (r registry) keys() []string {
	out := make([]string, 0, len(r))
	for key := range r {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := strings.Count(out[i], " "), strings.Count(out[j], " ")
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}

// attach builds cobra commands for reg under root.
func attach(root *cobra.Command, cc *commandContext, reg registry) {
	built := map[string]*cobra.Command{"": root}
	for _, key := range reg.keys() {
		spec := reg[key]
		use := spec.path[len(spec.path)-1]
		if spec.args != "" {
			use += " " + spec.args
		}
		cmd := &cobra.Command{
			Use:         use,
			Short:       spec.short,
			Long:        spec.long,
			Args:        spec.argCheck,
			Annotations: spec.annotations,
		}
		if spec.flags != nil {
			spec.flags(cmd.Flags())
		}
		if spec.setup != nil {
			spec.setup(cmd)
		}
		if spec.run != nil {
			cmd.RunE = cc.dispatch(spec.run)
		}
		parent := strings.Join(spec.path[:len(spec.path)-1], " ")
		built[parent].AddCommand(cmd)
		built[key] = cmd
	}
}

func (cc *commandContext) dispatch(run handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cc.started = true
		ctx := invocationContext(cmd)
		inv := &invocation{cmd: cmd, args: args, cc: cc}
		if shouldSkip(cmd, annotationSkipBus) {
			return run(ctx, inv)
		}
		return cc.withClient(ctx, cmd, func(client *actions.Client) error {
			inv.client = client
			return run(ctx, inv)
		})
	}
}

// commandKey is the command path without the root name.
func commandKey(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
