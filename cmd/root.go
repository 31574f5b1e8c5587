package cmd

import (
	"fmt"
	"os"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spoje-NET/abo-parser/internal/config"
	"github.com/Spoje-NET/abo-parser/internal/logging"
	"github.com/Spoje-NET/abo-parser/internal/parser"
	"github.com/Spoje-NET/abo-parser/internal/store"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfgFile  string
	logLevel string

	cfg *config.Config
	log *logrus.Logger
}

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := NewRootCmd().Execute(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "abo-parser",
		Short: "Decode ABO (GPC) bank statement files",
		Long: `abo-parser decodes ABO fixed-width bank statement files, as exported by
Czech and Slovak banks, into JSON, YAML, CSV or XLSX.

Both the basic and the extended 075 transaction layout are recognized, and
legacy code pages (windows-1250, iso-8859-2, cp852) are converted to UTF-8.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newArchiveCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	log.WithField("config", cfg.ConfigPath).Debug("configuration loaded")
	return nil
}

func (a *app) parserConfig() parser.Config {
	return parser.Config{
		Encoding:        a.cfg.Parser.Encoding,
		ConvertEncoding: a.cfg.Parser.ConvertEncoding,
	}
}

func (a *app) openStore() (*store.Store, error) {
	path, err := a.cfg.StorePath()
	if err != nil {
		return nil, fmt.Errorf("error getting archive path: %w", err)
	}
	a.log.WithField("path", path).Debug("opening archive")
	return store.NewStore(path)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
