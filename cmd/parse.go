package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Spoje-NET/abo-parser/internal/models"
	"github.com/Spoje-NET/abo-parser/internal/parser"
	"github.com/Spoje-NET/abo-parser/internal/report"
	"github.com/Spoje-NET/abo-parser/internal/store"
	"github.com/Spoje-NET/abo-parser/internal/writer"
)

const stdinName = "-"

type parseOptions struct {
	format    string
	output    string
	encoding  string
	noConvert bool
	noHeader  bool
	archive   bool
	summary   bool
}

type parseRunner struct {
	app  *app
	opts parseOptions
	in   io.Reader
	out  io.Writer
	err  io.Writer
}

// parsed is one decoded input.
type parsed struct {
	name string
	doc  *models.ParsedDocument
}

func newParseCmd(a *app) *cobra.Command {
	r := &parseRunner{app: a}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Decode ABO files",
		Long: `Decode one or more ABO files. With no file, or "-", the document is read
from standard input. A single document is written to standard output
unless --output is given; several documents are written next to their
inputs, or into the --output directory.`,
		Example: `  abo-parser parse vypis.gpc
  abo-parser parse --format csv --output vypis.csv vypis.gpc
  abo-parser parse --encoding cp852 --summary < vypis.abo
  abo-parser parse --format xlsx --output out/ jan.gpc feb.gpc mar.gpc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r.in = cmd.InOrStdin()
			r.out = cmd.OutOrStdout()
			r.err = cmd.ErrOrStderr()
			r.applyDefaults(cmd)
			return r.Run(cmd.Context(), args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&r.opts.format, "format", "f", "", "output format: json, yaml, csv, xlsx (default from config)")
	f.StringVarP(&r.opts.output, "output", "o", "", "output file, or directory when several inputs are given")
	f.StringVarP(&r.opts.encoding, "encoding", "e", "", "input encoding (default from config)")
	f.BoolVar(&r.opts.noConvert, "no-convert", false, "do not convert the input encoding")
	f.BoolVar(&r.opts.noHeader, "no-header", false, "omit metadata rows from CSV output")
	f.BoolVar(&r.opts.archive, "archive", false, "store parsed documents in the archive")
	f.BoolVar(&r.opts.summary, "summary", false, "print a summary table to stderr")

	return cmd
}

// applyDefaults fills options not given on the command line from config.
func (r *parseRunner) applyDefaults(cmd *cobra.Command) {
	cfg := r.app.cfg
	if !cmd.Flags().Changed("format") {
		r.opts.format = cfg.Output.Format
	}
	if !cmd.Flags().Changed("encoding") {
		r.opts.encoding = cfg.Parser.Encoding
	}
	if !cmd.Flags().Changed("no-convert") {
		r.opts.noConvert = !cfg.Parser.ConvertEncoding
	}
	if !cmd.Flags().Changed("no-header") {
		r.opts.noHeader = !cfg.Output.IncludeHeader
	}
}

func (r *parseRunner) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	w, err := writer.New(r.opts.format, writer.Options{IncludeHeader: !r.opts.noHeader})
	if err != nil {
		return err
	}

	p := parser.New(parser.Config{
		Encoding:        r.opts.encoding,
		ConvertEncoding: !r.opts.noConvert,
	}, parser.WithLogger(r.app.log))

	if len(args) == 0 {
		args = []string{stdinName}
	}
	stdin := 0
	for _, name := range args {
		if name == stdinName {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("standard input %q can only be given once", stdinName)
	}

	docs, err := r.parseAll(ctx, p, args)
	if err != nil {
		return err
	}

	if r.opts.archive {
		if err := r.archiveAll(docs); err != nil {
			return err
		}
	}

	if err := r.writeAll(w, docs); err != nil {
		return err
	}

	if r.opts.summary {
		for _, d := range docs {
			if err := renderSummary(r.err, d.name, report.Summarize(d.doc)); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseAll decodes every input concurrently, keeping the input order.
func (r *parseRunner) parseAll(ctx context.Context, p *parser.Parser, names []string) ([]parsed, error) {
	docs := make([]parsed, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.app.cfg.Parser.Workers)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var doc *models.ParsedDocument
			var err error
			if name == stdinName {
				var data []byte
				if data, err = parser.ReadAll(r.in); err == nil {
					doc, err = p.Parse(data)
				}
			} else {
				doc, err = p.ParseFile(name)
			}
			if err != nil {
				return err
			}

			r.app.log.WithFields(logrus.Fields{
				"file":         name,
				"format":       doc.Format,
				"statements":   len(doc.Statements),
				"transactions": len(doc.Transactions),
			}).Info("parsed")

			docs[i] = parsed{name: name, doc: doc}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *parseRunner) writeAll(w writer.Writer, docs []parsed) error {
	if len(docs) == 1 {
		if r.opts.output == "" {
			return w.Write(r.out, docs[0].doc)
		}
		return w.WriteToFile(r.opts.output, docs[0].doc)
	}

	if r.opts.output != "" {
		if err := os.MkdirAll(r.opts.output, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ext := writer.Extension(r.opts.format)
	for _, d := range docs {
		if d.name == stdinName {
			if err := w.Write(r.out, d.doc); err != nil {
				return err
			}
			continue
		}

		base := strings.TrimSuffix(d.name, filepath.Ext(d.name))
		if r.opts.output != "" {
			base = filepath.Join(r.opts.output, filepath.Base(base))
		}
		outPath := base + ext

		if err := w.WriteToFile(outPath, d.doc); err != nil {
			return err
		}
		pterm.Fprintln(r.err, pterm.Sprintf("%s -> %s", d.name, outPath))
	}
	return nil
}

func (r *parseRunner) archiveAll(docs []parsed) error {
	s, err := r.app.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	return archiveDocuments(s, docs, r.err)
}

func archiveDocuments(repo store.Repository, docs []parsed, out io.Writer) error {
	for _, d := range docs {
		name := d.name
		if name == stdinName {
			name = "stdin"
		}
		id, err := repo.SaveDocument(filepath.Base(name), d.doc)
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", d.name, err)
		}
		pterm.Fprintln(out, pterm.Success.Sprintf("Archived %s as %s", name, id))
	}
	return nil
}

func renderSummary(out io.Writer, name string, s report.Summary) error {
	if name == stdinName {
		name = "stdin"
	}

	transactions := fmt.Sprintf("%d (%d credit, %d debit)", s.Transactions, s.CreditCount, s.DebitCount)
	if s.Unclassified > 0 {
		transactions = fmt.Sprintf("%d (%d credit, %d debit, %d unclassified)",
			s.Transactions, s.CreditCount, s.DebitCount, s.Unclassified)
	}

	tableData := pterm.TableData{
		{"Document", name},
		{"Format", string(s.Format)},
		{"Statements", fmt.Sprint(s.Statements)},
		{"Transactions", transactions},
		{"Unrecognized records", fmt.Sprint(s.Unrecognized)},
		{"Credit", pterm.Green(s.Credit.StringFixed(2))},
		{"Debit", pterm.Red(s.Debit.StringFixed(2))},
		{"Net", s.Net.StringFixed(2)},
		{"Accounts", strings.Join(s.Accounts, ", ")},
	}

	return pterm.DefaultTable.WithWriter(out).WithData(tableData).Render()
}
