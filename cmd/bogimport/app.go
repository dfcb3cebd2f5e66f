package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/Carmen-Shannon/oxy-bog/engine"
	"github.com/Carmen-Shannon/oxy-bog/engine/config"
	"github.com/sqweek/dialog"
	"github.com/urfave/cli"
)

// cliState is the configuration resolved by the app's Before hook.
type cliState struct {
	out io.Writer
	cfg config.Config
}

func newApp(outW io.Writer) *cli.App {
	st := &cliState{out: outW}

	app := cli.NewApp()
	app.Name = "bogimport"
	app.Usage = "import Binary Opacity Grid scene folders as renderer-ready assets"
	app.Version = "0.1.0"
	app.Writer = outW
	app.ErrWriter = outW
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "TOML configuration `FILE`"},
		cli.StringFlag{Name: "asset-root", Usage: "folder assets are written under"},
		cli.BoolFlag{Name: "overwrite", Usage: "replace previously imported scenes"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		cli.BoolFlag{Name: "profile", Usage: "log per-stage timing and memory"},
	}
	app.Before = st.setup
	app.Commands = []cli.Command{
		{
			Name:      "import",
			Usage:     "import one scene folder, prompting for it when omitted",
			ArgsUsage: "[folder]",
			Action:    st.importScene,
		},
		{
			Name:      "batch",
			Usage:     "import every scene folder directly under root",
			ArgsUsage: "<root>",
			Action:    st.batch,
		},
		{
			Name:      "watch",
			Usage:     "re-import a scene folder whenever it changes",
			ArgsUsage: "<folder>",
			Action:    st.watch,
		},
		{
			Name:      "inspect",
			Usage:     "report what an import of a scene folder would use",
			ArgsUsage: "<folder>",
			Action:    st.inspect,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration",
			Action: st.printConfig,
		},
	}
	return app
}

// setup loads the config file and applies global flag overrides.
func (st *cliState) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("asset-root") {
		cfg.AssetRoot = c.String("asset-root")
	}
	if c.IsSet("overwrite") {
		cfg.Overwrite = c.Bool("overwrite")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("profile") {
		cfg.Profile = c.Bool("profile")
	}
	cfg, err = cfg.Normalize()
	if err != nil {
		return err
	}
	if err := common.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	st.cfg = cfg
	return nil
}

func (st *cliState) engine() engine.Engine {
	return engine.NewEngine(engine.WithConfig(st.cfg))
}

func (st *cliState) importScene(c *cli.Context) error {
	folder := c.Args().First()
	if folder == "" {
		picked, err := pickFolder()
		if err != nil && !errors.Is(err, dialog.ErrCancelled) {
			return fmt.Errorf("failed to open folder picker: %w", err)
		}
		folder = picked
	}

	res := st.engine().Run(folder)
	switch res.Outcome {
	case engine.OutcomeCancelled:
		fmt.Fprintln(st.out, "import cancelled")
		return nil
	case engine.OutcomeFailed:
		return errors.New(res.Message)
	}
	fmt.Fprintf(st.out, "imported %s into %s\n", res.Scene, res.OutputDir)
	return nil
}

func (st *cliState) batch(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		return errors.New("missing scene root folder")
	}

	results, err := st.engine().Batch(root)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Succeeded() {
			fmt.Fprintf(st.out, "ok    %s -> %s\n", res.Scene, res.OutputDir)
			continue
		}
		failed++
		fmt.Fprintf(st.out, "fail  %s: %s\n", res.Scene, res.Message)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(results))
	}
	fmt.Fprintf(st.out, "%d scenes imported\n", len(results))
	return nil
}

func (st *cliState) watch(c *cli.Context) error {
	folder := c.Args().First()
	if folder == "" {
		return errors.New("missing scene folder")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return st.engine().Watch(ctx, folder, func(res engine.Result) {
		if res.Succeeded() {
			fmt.Fprintf(st.out, "imported %s into %s\n", res.Scene, res.OutputDir)
			return
		}
		fmt.Fprintf(st.out, "import failed: %s\n", res.Message)
	})
}

func (st *cliState) inspect(c *cli.Context) error {
	folder := c.Args().First()
	if folder == "" {
		return errors.New("missing scene folder")
	}

	report, err := st.engine().Inspect(folder)
	if err != nil {
		return err
	}
	printReport(st.out, report)
	return nil
}

func (st *cliState) printConfig(c *cli.Context) error {
	data, err := st.cfg.Encode()
	if err != nil {
		return err
	}
	_, err = st.out.Write(data)
	return err
}

func printReport(w io.Writer, r *engine.Report) {
	fmt.Fprintf(w, "scene:       %s\n", r.Scene)

	switch {
	case r.ParamsFile == "":
		fmt.Fprintln(w, "parameters:  none")
	case r.ParamsErr != nil:
		fmt.Fprintf(w, "parameters:  %s (%v)\n", filepath.Base(r.ParamsFile), r.ParamsErr)
	default:
		fmt.Fprintf(w, "parameters:  %s (triplane resolution %d)\n", filepath.Base(r.ParamsFile), r.Params.TriplaneResolution)
	}

	fmt.Fprintln(w, "containers:")
	for _, c := range r.Containers {
		name := filepath.Base(c.Path)
		switch {
		case c.Excluded:
			fmt.Fprintf(w, "  %s excluded\n", name)
		case c.Err != nil:
			fmt.Fprintf(w, "  %s error: %v\n", name, c.Err)
		case c.Path == r.Selected:
			fmt.Fprintf(w, "  %s meshes=%d uv=%d selected\n", name, c.Meshes, c.UVChannels)
		default:
			fmt.Fprintf(w, "  %s meshes=%d uv=%d\n", name, c.Meshes, c.UVChannels)
		}
	}

	ok := 0
	for _, s := range r.Slices {
		if s.OK() {
			ok++
		}
	}
	fmt.Fprintf(w, "slices:      %d/%d ok\n", ok, len(r.Slices))
	for _, s := range r.Slices {
		switch {
		case !s.Present:
			fmt.Fprintf(w, "  %s missing\n", s.File)
		case !s.OK():
			fmt.Fprintf(w, "  %s %d bytes, expected %d\n", s.File, s.Size, s.Expected)
		}
	}

	fmt.Fprintf(w, "sparse grid: %d files\n", len(r.SparseGridFiles))
	if r.Ready() {
		fmt.Fprintln(w, "status:      ready")
	} else {
		fmt.Fprintln(w, "status:      not ready")
	}
}
