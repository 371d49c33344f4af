package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"contract-mapper/codec"
	"contract-mapper/internal/common"
	"contract-mapper/internal/errors"
	"contract-mapper/model"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "normalize <contract|->",
		Short: "Convert a contract document into entity model JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			res, err := a.codec.Import(cmd.Context(), text)
			if err != nil {
				return err
			}

			if !quiet {
				printDiagnostics(cmd, res.Diagnostics)
			}

			out, err := json.MarshalIndent(res.Model, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode entity model")
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print diagnostics")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var native bool

	cmd := &cobra.Command{
		Use:   "export <model.json|->",
		Short: "Convert entity model JSON into a contract document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var m model.EntityModel
			if err := json.Unmarshal(data, &m); err != nil {
				return errors.Wrap(err, "decode entity model")
			}

			var text []byte

			if native {
				var diags codec.Diagnostics

				text, diags, err = a.codec.ExportNative(cmd.Context(), &m)
				printDiagnostics(cmd, diags)
			} else {
				text, err = a.codec.Export(&m)
			}

			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(text))

			return nil
		},
	}

	cmd.Flags().BoolVar(&native, "native", false, "Render through the configured transformation engine")

	return cmd
}

func newRoundTripCmd(a *app) *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "roundtrip <contract|->",
		Short: "Import, export and re-import a contract and report drift",
		Long: `Import a contract, export the resulting model and import the output again.
The command fails when the two models differ.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			rt, err := a.codec.RoundTrip(cmd.Context(), text)
			if err != nil {
				return err
			}

			printDiagnostics(cmd, rt.First.Diagnostics)

			if showText {
				fmt.Fprint(cmd.OutOrStdout(), string(rt.Text))
			}

			if !rt.Stable() {
				for _, d := range rt.Drift {
					cmd.PrintErrln("drift", d)
				}

				return errors.Newf("round trip drifted in %d places", len(rt.Drift))
			}

			cmd.PrintErrln("round trip stable")

			return nil
		},
	}

	cmd.Flags().BoolVar(&showText, "print", false, "Print the exported contract")

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <contract|->",
		Short: "Summarize the tables and relationships of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			res, err := a.codec.Import(cmd.Context(), text)
			if err != nil {
				return err
			}

			if dump {
				cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
				cfg.Fdump(cmd.OutOrStdout(), res.Model)

				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), summary(res.Model))
			fmt.Fprintf(cmd.OutOrStdout(), "diagnostics: %d errors, %d warnings, %d infos\n",
				len(res.Diagnostics.Errors), len(res.Diagnostics.Warnings), len(res.Diagnostics.Infos))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the full entity model")

	return cmd
}

func summary(m *model.EntityModel) string {
	var b strings.Builder

	if m.Contract.Name != "" {
		fmt.Fprintf(&b, "contract %s %s\n", m.Contract.Name, m.Contract.Version)
	}

	for _, t := range m.Tables {
		fmt.Fprintf(&b, "table %s (%d columns", t.Name, len(t.Columns))

		if t.DataLevel != "" {
			fmt.Fprintf(&b, ", %s", t.DataLevel)
		}

		b.WriteString(")\n")
	}

	for _, r := range m.Relationships {
		src, dst := m.Table(r.SourceTableID), m.Table(r.TargetTableID)
		fmt.Fprintf(&b, "relationship %s -> %s (%s)\n",
			reference(src, r.SourceColumn), reference(dst, r.TargetColumn), r.Cardinality)
	}

	if ids, ok := m.TableDependencyOrder(); ok {
		fmt.Fprintf(&b, "dependency order: %s\n", strings.Join(tableNames(m, ids), ", "))
	}

	for _, group := range m.CircularTables() {
		fmt.Fprintf(&b, "circular: %s\n", strings.Join(tableNames(m, group), ", "))
	}

	return b.String()
}

func reference(t *model.Table, column string) string {
	if t == nil {
		return "?"
	}

	return common.JoinRef(t.Name, column)
}

func tableNames(m *model.EntityModel, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = reference(m.Table(id), "")
	}

	return out
}
