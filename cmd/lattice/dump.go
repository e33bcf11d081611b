package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lattice/internal/attr"
	"lattice/internal/attrenc"
	"lattice/internal/diag"
	"lattice/internal/source"
)

var (
	dumpKindColor = color.New(color.FgCyan, color.Bold)
	dumpErrColor  = color.New(color.FgRed, color.Bold)
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.mp> [files...]",
	Short: "Render serialized constant attributes",
	Long:  `Dump reads msgpack literal payloads and prints each as an IR attribute`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	// lattice.toml задаёт дефолты, флаги важнее.
	if cfg, ok, err := loadToolConfig("."); err != nil {
		return err
	} else if ok {
		if !cmd.Flags().Changed("color") && cfg.Output.Color != "" {
			colorFlag = cfg.Output.Color
		}
		if !cmd.Flags().Changed("max-diagnostics") && cfg.Output.MaxDiagnostics > 0 {
			maxDiags = cfg.Output.MaxDiagnostics
		}
	}

	mode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !shouldColor(mode)

	ctx := attr.NewContext()
	ctx.RegisterDialect(attrenc.NewLitDialect())
	bag := diag.NewBag(maxDiags)

	out := cmd.OutOrStdout()
	for _, path := range args {
		dumpOne(ctx, bag, out, path)
	}

	renderDiagnostics(cmd.ErrOrStderr(), bag)
	if bag.HasErrors() {
		return fmt.Errorf("%d of %d payloads failed", bag.Len(), len(args))
	}
	return nil
}

func dumpOne(ctx *attr.Context, bag *diag.Bag, out io.Writer, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.DecodeBadPayload, source.Span{},
			fmt.Sprintf("%s: %v", path, err))
		return
	}
	e, err := attrenc.Decode(ctx, data)
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.DecodeBadPayload, source.Span{},
			fmt.Sprintf("%s: %v", path, err))
		return
	}
	fmt.Fprintf(out, "%s: %s\n", path, highlightAttr(e.Attr.String()))
}

// highlightAttr colorizes the leading kind keyword of a rendered attribute,
// e.g. the "sparse" of `sparse<tensor<3x4xi32>, ...>`.
func highlightAttr(s string) string {
	head, rest, found := strings.Cut(s, "<")
	if !found {
		return s
	}
	return dumpKindColor.Sprint(head) + "<" + rest
}

func renderDiagnostics(out io.Writer, bag *diag.Bag) {
	for _, d := range bag.Items() {
		fmt.Fprintf(out, "%s %s: %s\n", dumpErrColor.Sprint(d.Severity), d.Code.ID(), d.Message)
	}
}
