package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/hookscope/demo"
	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/hooking"
	"github.com/sarchlab/hookscope/lifecycle"
	"github.com/sarchlab/hookscope/recording"
	"github.com/sarchlab/hookscope/session"
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"
)

type flushCloser interface {
	hooking.Hook
	Flush() error
	Close() error
}

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a demo scenario and print the event log.",
		Long:  "Run a demo scenario and print the event log.\n\nScenarios:\n" + scenarioList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFor(cmd)
			if err != nil {
				return err
			}

			return runScenario(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg)
		},
	}

	runCmd.Flags().String("export", "", "export the log as csv, json or sqlite")
	runCmd.Flags().String("out", "", "export file path without extension")
	runCmd.Flags().Bool("dump-state", false, "print the final component as JSON")
	runCmd.Flags().Bool("verbose", false, "print entries as they are flushed")
	runCmd.Flags().Int("step", 1, "step of the counters")

	return runCmd
}

func scenarioList() string {
	list := ""
	for _, sc := range demo.Scenarios() {
		list += fmt.Sprintf("  %-8s %s\n", sc.Name, sc.Description)
	}

	return list
}

func runScenario(out, errOut io.Writer, name string, cfg Config) error {
	sc, err := demo.Lookup(name)
	if err != nil {
		return err
	}

	class, set, err := pickClass(cfg)
	if err != nil {
		return err
	}

	b := session.MakeBuilder().WithLogger(log.New(errOut, "", 0))
	if cfg.Verbose {
		b = b.WithLogHook(eventlog.NewLogHook(log.New(errOut, "flushed ", 0)))
	}

	s := b.Build()

	rec, err := openExport(cfg, s.ID)
	if err != nil {
		return err
	}

	if rec != nil {
		s.Log.AcceptHook(rec)
	}

	res, err := sc.Run(s, class, set, lifecycle.Props{"step": cfg.Step})
	if err != nil {
		return err
	}

	printEntries(out, res.Entries)
	fmt.Fprintln(out)
	printRows(out, s, res, set)

	if cfg.DumpState && res.Mount != nil {
		fmt.Fprintln(out)

		if err := dumpState(out, res.Mount.Instance().Unwrap()); err != nil {
			return err
		}
	}

	if rec != nil {
		return rec.Close()
	}

	return nil
}

// pickClass returns the demo class to run and the set to instrument it with.
// Classes that define no set-specific hook can be run with either set.
func pickClass(cfg Config) (*lifecycle.Class, *lifecycle.CapabilitySet, error) {
	name := cfg.Class
	if name == "" {
		name = demo.ModernCounterClass.Name()
		if cfg.Legacy {
			name = demo.LegacyCounterClass.Name()
		}
	}

	class := demo.Class(name)
	if class == nil {
		return nil, nil, fmt.Errorf("unknown class %q", name)
	}

	set, err := lifecycle.DetectSet(class)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Legacy {
		set = lifecycle.Legacy
	}

	return class, set, nil
}

func openExport(cfg Config, sessionID string) (flushCloser, error) {
	switch cfg.Export {
	case "":
		return nil, nil
	case "csv":
		return recording.OpenCSVFile(cfg.Out, sessionID), nil
	case "json":
		return recording.OpenJSONFile(cfg.Out, sessionID), nil
	case "sqlite":
		return recording.OpenSQLiteFile(cfg.Out, sessionID), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", cfg.Export)
	}
}

func printEntries(out io.Writer, entries []eventlog.Entry) {
	for _, e := range entries {
		fmt.Fprintln(out, e.String())
	}
}

func printRows(
	out io.Writer,
	s *session.Session,
	res *demo.Result,
	set *lifecycle.CapabilitySet,
) {
	for _, label := range s.Index.Instances() {
		fmt.Fprintf(out, "%s (%s)\n", label, set)

		for _, row := range s.Index.Rows(res.Class, set, nil) {
			mark := " "
			if row.Implemented {
				mark = "x"
			}

			fmt.Fprintf(out, "  [%s] %-26s fired %d\n",
				mark, row.Hook, s.Index.FireCount(label, row.Hook))
		}
	}
}

func dumpState(out io.Writer, comp lifecycle.Component) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(comp)
	serializer.SetMaxDepth(2)

	if err := serializer.Serialize(out); err != nil {
		return err
	}

	fmt.Fprintln(out)

	return nil
}
