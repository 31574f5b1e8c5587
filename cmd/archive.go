package cmd

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Spoje-NET/abo-parser/internal/store"
	"github.com/Spoje-NET/abo-parser/internal/writer"
)

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived documents",
	}

	cmd.AddCommand(newArchiveListCmd(a))
	cmd.AddCommand(newArchiveShowCmd(a))
	cmd.AddCommand(newArchiveDeleteCmd(a))

	return cmd
}

func newArchiveListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			return listDocuments(s, cmd.OutOrStdout())
		},
	}
}

func newArchiveShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			w, err := writer.New(format, writer.Options{IncludeHeader: a.cfg.Output.IncludeHeader})
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.GetDocument(args[0])
			if err != nil {
				return err
			}
			return w.Write(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json, yaml, csv, xlsx (default from config)")
	return cmd
}

func newArchiveDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a document from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteDocument(args[0]); err != nil {
				return err
			}
			pterm.Fprintln(cmd.ErrOrStderr(), pterm.Success.Sprintf("Deleted %s", args[0]))
			return nil
		},
	}
}

func listDocuments(repo store.Repository, out io.Writer) error {
	docs, err := repo.ListDocuments()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		pterm.Fprintln(out, pterm.Info.Sprint("The archive is empty."))
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name", "Format", "Archived", "Statements", "Transactions", "Records"}}
	for _, d := range docs {
		tableData = append(tableData, []string{
			d.ID,
			d.Name,
			d.Format,
			d.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprint(d.Statements),
			fmt.Sprint(d.Transactions),
			fmt.Sprint(d.RawRecords),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(tableData).Render()
}
