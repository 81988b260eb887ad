package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/config"
	"github.com/zhubert/combobox/internal/datasource"
)

var (
	attrsOpen   bool
	attrsCursor int
)

var attrsCmd = &cobra.Command{
	Use:   "attrs [filter]",
	Short: "Print the accessibility attributes of every widget element",
	Long: `Builds the widget without a terminal, mounts one option per record and
prints the attributes of the container, the input, the toggle and each
option, one element per line.

The optional argument filters the records the same way typing does.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAttrs,
}

func init() {
	attrsCmd.Flags().BoolVar(&attrsOpen, "open", false, "Open the list before printing")
	attrsCmd.Flags().IntVar(&attrsCursor, "cursor", -1, "Move the navigation cursor to this option index")
	rootCmd.AddCommand(attrsCmd)
}

func runAttrs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	records, err := loadRecords(cfg.DataFile)
	if err != nil {
		return err
	}

	var term string
	if len(args) > 0 {
		term = args[0]
	}
	return writeAttributes(cmd.OutOrStdout(), cfg, records, attrsSnapshot{
		Filter: term,
		Open:   attrsOpen,
		Cursor: attrsCursor,
	})
}

// attrsSnapshot describes the widget state to print.
type attrsSnapshot struct {
	Filter string
	Open   bool
	Cursor int // -1 leaves the cursor where binding put it
}

func writeAttributes(w io.Writer, cfg *config.Config, records []combobox.Record, snap attrsSnapshot) error {
	accessor, err := combobox.PathAccessor(cfg.GetPaths())
	if err != nil {
		return err
	}

	cb, err := combobox.New(combobox.Config[combobox.Record]{
		Value:       cfg.InitialValue(),
		Placeholder: cfg.GetPlaceholder(),
		Accessor:    accessor,
	})
	if err != nil {
		return err
	}
	defer cb.Destroy()

	input := combobox.NewInput(cb)
	toggle := combobox.NewToggle(cb)
	toggle.Disabled = cfg.ToggleDisabled

	items := datasource.Filter(records, snap.Filter, cfg.GetFilterMode(), accessor.Label, accessor.Value)
	for _, r := range items {
		combobox.NewOption(cb, r).Mount()
	}
	settle(cb)

	if snap.Open {
		cb.Open()
	}
	if snap.Cursor >= 0 {
		cb.FocusOptionAtIndex(snap.Cursor)
	}
	settle(cb)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "container\t%s\n", cb.Attributes())
	fmt.Fprintf(tw, "input\t%s\n", input.Attributes())
	fmt.Fprintf(tw, "toggle\t%s\n", toggle.Attributes())
	for _, o := range cb.Options() {
		fmt.Fprintf(tw, "option %s\tid=%q %s\n", o.Value(), o.ID(), o.Attributes())
	}
	return tw.Flush()
}

// settle runs deferred work until none is left.
func settle(cb *combobox.Combobox[combobox.Record]) {
	for cb.Scheduler().Pending() {
		if cb.Scheduler().Flush() == 0 {
			return
		}
	}
}
