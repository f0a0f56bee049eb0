// Command tilefish generates seamless tiles and shows them in a browser or
// saves them to disk.
//
// Usage:
//
//	tilefish serve [-config file] [-listen addr]
//	tilefish save  [-config file] [-out dir] [-format png|bmp|tiff] [-prefix name] [-preview]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/tilefish"
	"github.com/gogpu/tilefish/integration/dirhost"
	"github.com/gogpu/tilefish/integration/webhost"
	"github.com/gogpu/tilefish/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("tilefish failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "serve":
		return serve(ctx, args[1:], stderr)
	case "save":
		return save(ctx, args[1:], stderr)
	case "-h", "-help", "--help", "help":
		usage(stderr)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: tilefish serve [-config file] [-listen addr]")
	fmt.Fprintln(w, "       tilefish save  [-config file] [-out dir] [-format png|bmp|tiff] [-prefix name] [-preview]")
}

// loadConfig reads the config file when one is named.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config, stderr io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	tilefish.SetLogger(logger)
	return nil
}

func controllerOptions(cfg *config.Config) ([]tilefish.ControllerOption, error) {
	format, err := cfg.ImageFormat()
	if err != nil {
		return nil, err
	}
	return []tilefish.ControllerOption{
		tilefish.WithSize(cfg.Size),
		tilefish.WithDebounce(cfg.Debounce),
		tilefish.WithFormat(format),
		tilefish.WithRetries(cfg.Retries),
	}, nil
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML config file")
		listen     = fs.String("listen", "", "listen address (overrides config)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Serve.Listen = *listen
	}
	if err := setupLogger(cfg, stderr); err != nil {
		return err
	}
	opts, err := controllerOptions(cfg)
	if err != nil {
		return err
	}

	host := webhost.New(webhost.WithFilePrefix(cfg.Save.Prefix))
	ctrl := tilefish.NewController(tilefish.NewFishGenerator(cfg.Size, nil), host, opts...)
	srv := &http.Server{
		Addr:    cfg.Serve.Listen,
		Handler: host.Handler(ctrl),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	slog.Info("tilefish: serving", "addr", "http://"+cfg.Serve.Listen)

	go func() {
		if err := ctrl.Load(ctx); err != nil {
			slog.Warn("tilefish: initial load failed", "err", err)
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	ctrl.Cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Serve.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("tilefish: stopped")
	return nil
}

func save(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML config file")
		out        = fs.String("out", "", "output directory (overrides config)")
		format     = fs.String("format", "", "png, bmp or tiff (overrides config)")
		prefix     = fs.String("prefix", "", "file name prefix (overrides config)")
		preview    = fs.Bool("preview", false, "also write repeat previews")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.Save.Dir = *out
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *prefix != "" {
		cfg.Save.Prefix = *prefix
	}
	if *preview {
		cfg.Save.Preview.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogger(cfg, stderr); err != nil {
		return err
	}
	opts, err := controllerOptions(cfg)
	if err != nil {
		return err
	}

	hostOpts := []dirhost.Option{dirhost.WithPrefix(cfg.Save.Prefix)}
	if p := cfg.Save.Preview; p.Enabled {
		hostOpts = append(hostOpts, dirhost.WithPreview(tilefish.PreviewOptions{
			Cols: p.Cols, Rows: p.Rows, Scale: p.Scale, Caption: true,
		}))
	}
	host := dirhost.New(cfg.Save.Dir, hostOpts...)
	ctrl := tilefish.NewController(tilefish.NewFishGenerator(cfg.Size, nil), host, opts...)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if err := host.Err(); err != nil {
		return err
	}
	for _, p := range host.Paths() {
		fmt.Println(p)
	}
	return nil
}
