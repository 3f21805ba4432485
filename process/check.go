package process

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tstyle/state"
	"tstyle/style"
	"tstyle/textdoc"
)

// Check implements the check command: parse every declaration and compile
// every snippet in the document without styling anything.
func Check(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, extra arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	log.Info("Checking starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Checking completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
			log.Warn("Unable to store source document in debug report", zap.String("file", src), zap.Error(err))
		}
	}

	doc, err := textdoc.Load(src, log)
	if err != nil {
		return fmt.Errorf("unable to load document (%s): %w", src, err)
	}
	return checkDocument(doc, env, log)
}

// checkDocument validates declarations table by table, accumulating every
// problem rather than stopping at the first one.
func checkDocument(doc *textdoc.Document, env *state.LocalEnv, log *zap.Logger) error {
	parser := style.NewParser(log)

	var result error
	for _, tbl := range doc.Tables() {
		decl := tbl.Declarations()
		if decl.Empty() {
			log.Debug("Nothing declared", zap.String("table", tbl.ID()))
			continue
		}
		if _, err := parser.ParseRuleSet(decl.Background, decl.Foreground, decl.Custom); err != nil {
			log.Error("Bad rule declaration", zap.String("table", tbl.ID()), zap.Error(err))
			result = multierr.Append(result, fmt.Errorf("table %s: %w", tbl.ID(), err))
		}
		if _, err := style.CompileSnippets(decl.Computed, decl.Striped, env.Cfg.Styling.StripeBackground); err != nil {
			log.Error("Bad computed snippet", zap.String("table", tbl.ID()), zap.Error(err))
			result = multierr.Append(result, fmt.Errorf("table %s: %w", tbl.ID(), err))
		}
	}

	if result == nil {
		log.Info("All declarations are valid", zap.String("document", filepath.Base(doc.Name())), zap.Int("tables", len(doc.Tables())))
	}
	return result
}
