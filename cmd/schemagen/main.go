package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/inspect"
	"github.com/syssam/schemagen/dialect"
	"github.com/syssam/schemagen/schema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envFile    string
	logLevel   string

	dsn        string
	dialectArg string
	schemaName string
	snapshot   string

	rulesPath string
	watch     bool

	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate annotated entity, DTO and validator classes from a database schema",
		Long: `schemagen inspects a relational database schema and generates
annotated entity classes, data-transfer objects and input validators
from its tables, with types classified and converted across dialects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			opts.log.SetLevel(level)
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil {
					return fmt.Errorf("load env file: %w", err)
				}
			} else {
				// A missing default .env is not an error.
				_ = godotenv.Load()
			}
			if opts.dsn == "" {
				opts.dsn = os.Getenv("SCHEMAGEN_DSN")
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "schemagen.yaml", "path to the generation config file")
	pf.StringVar(&opts.envFile, "env-file", "", "env file to load before reading the environment")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.dsn, "dsn", "", "database connection string (defaults to SCHEMAGEN_DSN)")
	pf.StringVarP(&opts.dialectArg, "dialect", "d", "", "source dialect (mysql, postgres, sqlite, sqlserver)")
	pf.StringVar(&opts.schemaName, "schema", "", "database schema to inspect")
	pf.StringVar(&opts.snapshot, "snapshot", "", "schema snapshot file to read from or write to")

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newValidatorsCmd(opts))
	rootCmd.AddCommand(newConvertCmd(opts))
	return rootCmd
}

func newGenerateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate entity and DTO classes from the inspected schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.watch {
				return runGenerate(cmd.Context(), opts)
			}
			return watchGenerate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate on config or rules file changes")
	return cmd
}

func newValidatorsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validators [module]",
		Short: "Generate insert and update validator classes from a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidators(cmd.Context(), opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.rulesPath, "rules", "r", "rules.yaml", "path to the validation rules file")
	return cmd
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [target-dialect]",
		Short: "Print every inspected column type in the target dialect's syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, cmd.OutOrStdout(), args[0])
		},
	}
}

func loadConfig(opts *options) (*gen.Config, error) {
	cfg, err := gen.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dialectArg != "" {
		cfg.Dialect = opts.dialectArg
	}
	return cfg, nil
}

// loadTables reads the schema from the configured source: a snapshot when
// one exists, a live database otherwise. A live inspection refreshes the
// snapshot when a snapshot path is set.
func loadTables(ctx context.Context, opts *options, cfg *gen.Config) ([]schema.Table, error) {
	d, ok := dialect.FromString(cfg.Dialect)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}

	if opts.dsn == "" {
		if opts.snapshot == "" {
			return nil, fmt.Errorf("no database connection: set --dsn, SCHEMAGEN_DSN or --snapshot")
		}
		snap, err := inspect.ReadSnapshot(opts.snapshot)
		if err != nil {
			return nil, err
		}
		opts.log.WithField("snapshot", opts.snapshot).Info("generating from snapshot")
		return snap.Tables, nil
	}

	db, err := sql.Open(driverName(d), opts.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	ins, err := inspect.New(db, d)
	if err != nil {
		return nil, err
	}
	tables, err := inspect.Tables(ctx, ins, opts.schemaName)
	if err != nil {
		return nil, err
	}
	if opts.snapshot != "" {
		snap := &inspect.Snapshot{Dialect: d.String(), Schema: opts.schemaName, Tables: tables}
		if err := inspect.WriteSnapshot(opts.snapshot, snap); err != nil {
			opts.log.WithError(err).Warn("snapshot not written")
		}
	}
	return tables, nil
}

func driverName(d dialect.Dialect) string {
	// Driver registration names match the dialect constants.
	return d.String()
}

func runGenerate(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	tables, err := loadTables(ctx, opts, cfg)
	if err != nil {
		return err
	}

	g, err := gen.NewGenerator(cfg, gen.WithLogger(opts.log))
	if err != nil {
		return err
	}
	res, err := g.Generate(ctx, tables)
	if err != nil {
		return err
	}
	if err := writeFiles(cfg.Target, res); err != nil {
		return err
	}
	opts.log.WithFields(logrus.Fields{
		"tables": len(tables),
		"files":  len(res.Files),
		"bytes":  res.Bytes,
	}).Info("generation complete")
	return nil
}

func runValidators(ctx context.Context, opts *options, module string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defs, err := loadRules(opts.rulesPath)
	if err != nil {
		return err
	}

	g, err := gen.NewGenerator(cfg, gen.WithLogger(opts.log))
	if err != nil {
		return err
	}
	res, err := g.GenerateValidators(ctx, module, defs, gen.ApplyInsert, gen.ApplyUpdate)
	if err != nil {
		return err
	}
	if err := writeFiles(cfg.Target, res); err != nil {
		return err
	}
	opts.log.WithFields(logrus.Fields{
		"module": module,
		"files":  len(res.Files),
	}).Info("validators generated")
	return nil
}

func runConvert(ctx context.Context, opts *options, out io.Writer, target string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	d, ok := dialect.FromString(target)
	if !ok {
		return fmt.Errorf("unknown target dialect %q", target)
	}
	tables, err := loadTables(ctx, opts, cfg)
	if err != nil {
		return err
	}

	g, err := gen.NewGenerator(cfg, gen.WithLogger(opts.log))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, t := range tables {
		converted, err := g.ConvertTable(t, d)
		if err != nil {
			return err
		}
		if converted == nil {
			opts.log.WithField("table", t.Name).Warn("no conversion for target dialect")
			continue
		}
		fmt.Fprintf(w, "%s\n", t.Name)
		for _, c := range converted {
			fmt.Fprintf(w, "  %s\t%s\n", c.Name, c.Type)
		}
	}
	return w.Flush()
}

func writeFiles(target string, res *gen.Result) error {
	if target == "" {
		target = "."
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	for _, f := range res.Files {
		if err := os.WriteFile(filepath.Join(target, f.Name), f.Source, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// ruleFile is the on-disk shape of a validation rules document.
type ruleFile struct {
	Fields []struct {
		Name  string `yaml:"name"`
		Type  string `yaml:"type"`
		Rules []struct {
			Type        string            `yaml:"type"`
			ApplyInsert bool              `yaml:"applyInsert"`
			ApplyUpdate bool              `yaml:"applyUpdate"`
			Attributes  map[string]string `yaml:"attributes"`
		} `yaml:"rules"`
	} `yaml:"fields"`
}

func loadRules(path string) ([]schema.FieldValidation, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var doc ruleFile
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	defs := make([]schema.FieldValidation, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		def := schema.FieldValidation{Name: f.Name, Type: f.Type}
		for _, r := range f.Rules {
			rule := schema.Rule{
				Type:        r.Type,
				ApplyInsert: r.ApplyInsert,
				ApplyUpdate: r.ApplyUpdate,
			}
			keys := make([]string, 0, len(r.Attributes))
			for k := range r.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				v := r.Attributes[k]
				rule.Attributes = append(rule.Attributes, schema.RuleAttribute{
					Key:   k,
					Value: v,
					Quote: !bareLiteral(v),
				})
			}
			def.Rules = append(def.Rules, rule)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// bareLiteral reports whether a rule attribute value renders without
// quotes: numbers, booleans and enum-style references such as
// "GenerationType.UUID". Everything else is a string and is quoted.
func bareLiteral(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseBool(s); err == nil {
		return true
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return strings.Contains(s, ".")
}

// watchGenerate regenerates on every write to the config, rules or env
// file until the context is canceled.
func watchGenerate(ctx context.Context, opts *options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	watched := []string{opts.configPath}
	if opts.rulesPath != "" {
		watched = append(watched, opts.rulesPath)
	}
	if opts.envFile != "" {
		watched = append(watched, opts.envFile)
	}
	for _, path := range watched {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	if err := runGenerate(ctx, opts); err != nil {
		opts.log.WithError(err).Error("generation failed")
	}
	opts.log.WithField("files", watched).Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			opts.log.WithField("file", event.Name).Info("change detected")
			if err := runGenerate(ctx, opts); err != nil {
				opts.log.WithError(err).Error("generation failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.log.WithError(err).Warn("watch error")
		}
	}
}
