package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/internal/server"
	"github.com/pedigraph/pedigraph/pkg/cache"
	"github.com/pedigraph/pedigraph/pkg/gedcom"
)

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve <file.ged>",
		Short: "Serve the pedigree queries as a JSON HTTP API",
		Long: `Loads the GEDCOM file once and serves read-only JSON endpoints for
ancestor enumeration, coefficients of inbreeding, descendant counts,
brick walls, and the whole-tree reports. Expensive whole-tree queries are
memoized in a result cache keyed by the file's content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			store, err := gedcom.ParseFile(args[0])
			if err != nil {
				return err
			}
			c.Logger.Infof("Loaded %d persons and %d families from %s",
				store.PersonCount(), store.FamilyCount(), args[0])

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if backend == "" {
				backend = c.Config.Server.Cache
			}
			if redisAddr == "" {
				redisAddr = c.Config.Server.RedisAddr
			}

			ttl, err := time.ParseDuration(c.Config.Server.CacheTTL)
			if err != nil {
				return fmt.Errorf("parse cache_ttl: %w", err)
			}

			var resultCache cache.Cache
			switch backend {
			case "none":
				resultCache = cache.NewNullCache()
			case "file":
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				resultCache, err = cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open file cache: %w", err)
				}
			case "redis":
				rc, err := cache.NewRedisCache(cmd.Context(), redisAddr)
				if err != nil {
					return fmt.Errorf("connect redis at %s: %w", redisAddr, err)
				}
				defer rc.Close()
				resultCache = rc
			default:
				return fmt.Errorf("unknown cache backend %q (want file, redis, or none)", backend)
			}

			srv := server.New(store, c.Logger, server.Options{
				TreeHash:   cache.TreeHash(data),
				MaxGen:     c.Config.MaxGenerations,
				Thresholds: c.Config.Priority.Thresholds(),
				Cache:      resultCache,
				CacheTTL:   ttl,
			})

			c.Logger.Infof("Listening on %s (cache: %s)", addr, backend)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&backend, "cache", "", "result cache backend: file, redis, or none (default from config)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for the redis backend (default from config)")

	return cmd
}

// cacheDir returns the directory used by the file cache backend.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
