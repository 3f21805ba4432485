// Package process implements the command line actions: styling pipe-table
// documents into rendered outputs and checking declarations without styling.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tstyle/render"
	"tstyle/state"
	"tstyle/table"
	"tstyle/textdoc"
)

// Run implements the style command: load the source document, restyle every
// table in it and render the result to the destination.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("style")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := render.ParseFormat(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to ansi", zap.Error(err))
		format = render.FormatAnsi
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process styles a single document and writes it out. Empty destination
// means stdout, a directory derives the output name from configuration,
// anything else is taken as the output file verbatim.
func process(ctx context.Context, src, dst string, format render.Format, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
			log.Warn("Unable to store source document in debug report", zap.String("file", src), zap.Error(err))
		}
	}

	doc, err := textdoc.Load(src, log)
	if err != nil {
		return fmt.Errorf("unable to load document (%s): %w", src, err)
	}
	if len(doc.Tables()) == 0 {
		log.Debug("Nothing to style", zap.String("document", doc.Name()))
	}

	styled, err := styleDocument(ctx, doc, log)
	if err != nil {
		return err
	}

	var (
		out        io.Writer = os.Stdout
		stream               = os.Stdout
		outputName string
	)
	if len(dst) != 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
		if fi, err := os.Stat(dst); err == nil && fi.Mode().IsDir() {
			outputName = buildOutputPath(doc, src, dst, format, env)
		} else {
			outputName = dst
		}
		f, err := createOutputFile(outputName, env, log)
		if err != nil {
			return err
		}
		defer f.Close()
		out, stream = f, f
	}

	if err := rendererFor(format, stream, env).Render(out, filepath.Base(src), styled); err != nil {
		return fmt.Errorf("unable to render output: %w", err)
	}

	// Store results for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData("dump/document.tree", []byte(doc.Dump()))
		var buf bytes.Buffer
		if err := render.NewMarkerDump(env.Log).Render(&buf, filepath.Base(src), styled); err == nil {
			env.Rpt.StoreData("dump/markers.yaml", buf.Bytes())
		}
		if len(outputName) != 0 {
			env.Rpt.Store("result"+format.Ext(), outputName)
		}
	}

	if len(outputName) != 0 {
		log.Info("Document styled", zap.String("to", outputName), zap.Int("tables", len(styled)))
	}
	return nil
}

// styleDocument runs a restyle pass over every table of the document and
// collects the published markers per table for rendering.
func styleDocument(ctx context.Context, doc *textdoc.Document, log *zap.Logger) ([]render.Styled, error) {
	env := state.EnvFromContext(ctx)

	styler := table.NewStyler(table.Options{
		Tag:              env.Cfg.Styling.MarkerTag,
		KeepOnError:      env.Cfg.Styling.KeepOnError,
		StrictSnippets:   env.Cfg.Styling.StrictSnippets,
		StripeBackground: env.Cfg.Styling.StripeBackground,
	}, log)

	styled := make([]render.Styled, 0, len(doc.Tables()))
	for _, tbl := range doc.Tables() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := styler.Restyle(tbl, tbl.Sink())
		if err != nil {
			return nil, fmt.Errorf("unable to style table (%s): %w", tbl.ID(), err)
		}
		for _, serr := range res.SnippetErrors {
			log.Warn("Snippet evaluation failed, cell left unstyled", zap.String("table", tbl.ID()), zap.Error(serr))
		}
		log.Debug("Table styled",
			zap.String("table", tbl.ID()),
			zap.Int("cells", res.Cells),
			zap.Int("published", res.Published),
			zap.Int("skipped", res.Skipped))

		styled = append(styled, render.Styled{
			ID:      tbl.ID(),
			Table:   tbl,
			Markers: tableMarkers(doc, tbl, styler.Tag()),
		})
	}
	return styled, nil
}

// tableMarkers selects published markers lying within the table block.
func tableMarkers(doc *textdoc.Document, tbl *textdoc.Table, tag string) []table.Marker {
	span := tbl.Span()
	var out []table.Marker
	for _, m := range doc.Markers().Markers(tag) {
		if span.Contains(m.Span) {
			out = append(out, m)
		}
	}
	return out
}

// createOutputFile opens the destination honoring the overwrite flag and
// creating missing directories.
func createOutputFile(name string, env *state.LocalEnv, log *zap.Logger) (*os.File, error) {
	if _, err := os.Stat(name); err == nil {
		if !env.Overwrite {
			return nil, fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		if err = os.Remove(name); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.Create(name)
}

// rendererFor builds the renderer for the requested format. The stream is
// only consulted for the color decision in automatic mode.
func rendererFor(format render.Format, stream *os.File, env *state.LocalEnv) render.Renderer {
	switch format {
	case render.FormatHTML:
		return render.NewHTML(render.HTMLOptions{Title: env.Cfg.Render.HTML.Title}, env.Log)
	case render.FormatMarkers:
		return render.NewMarkerDump(env.Log)
	default:
		return render.NewANSI(render.ANSIOptions{
			Color:  env.Cfg.Render.ANSI.Color.Enabled(stream),
			Border: env.Cfg.Render.ANSI.Border,
		}, env.Log)
	}
}
