package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yergin/test-pattern-descriptor/pkg/cache"
	"github.com/yergin/test-pattern-descriptor/pkg/pipeline"
	"github.com/yergin/test-pattern-descriptor/pkg/server"
)

// Cache backends for the serve command.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// serveOpts holds the command-line flags for the serve command.
// Flags override values from the config file.
type serveOpts struct {
	config       string // config file path, "" = default location
	addr         string // listen address
	overlayDir   string // directory overlay images are served from
	cacheBackend string // artifact cache backend
}

// serveCommand creates the serve command running the HTTP rendering API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Serve exposes the rendering pipeline over HTTP. Descriptors are POSTed
to /v1/render and /v1/validate, and rendered artifacts are cached under
the descriptor content hash. Overlay images are read only from the
configured overlay directory; with none configured, overlay references
are rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), c, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ~/.config/tpat/config.toml)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&opts.overlayDir, "overlay-dir", "", "directory overlay images are served from")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", "", "cache backend: file (default), redis, none")

	return cmd
}

// runServe assembles the cache, runner, and server from config and flags,
// then serves until the context is cancelled.
func runServe(ctx context.Context, c *CLI, opts *serveOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.overlayDir != "" {
		cfg.Server.OverlayDir = opts.overlayDir
	}
	if opts.cacheBackend != "" {
		cfg.Cache.Backend = opts.cacheBackend
	}

	store, err := newServeCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace+":")
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		OverlayDir:      cfg.Server.OverlayDir,
	}, runner, c.Logger)

	return srv.ListenAndServe(ctx)
}

// newServeCache builds the artifact cache selected by cfg.
func newServeCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", cacheBackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case cacheBackendRedis:
		addr := cfg.Redis.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be 'file', 'redis', or 'none')", cfg.Backend)
	}
}
