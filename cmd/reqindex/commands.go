package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hupe1980/reqindex"
	"github.com/hupe1980/reqindex/internal/config"
	promcollector "github.com/hupe1980/reqindex/metric/prometheus"
	"github.com/hupe1980/reqindex/model"
	"github.com/hupe1980/reqindex/source"
	"github.com/hupe1980/reqindex/watch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func parseID(s string) (model.ID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return model.ID(v), nil
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the sample records as a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			name, err := a.snapshotName()
			if err != nil {
				return err
			}
			recs := source.SampleRecords(time.Now())
			if err := source.WriteSnapshot(ctx, store, name, recs, a.snapshotCodec()); err != nil {
				return err
			}
			a.logger.InfoContext(ctx, "snapshot written", "name", name, "records", len(recs))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ix.Statistics())
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a record by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			r, ok := ix.GetByID(id)
			if !ok {
				return fmt.Errorf("record %d not found", id)
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		byPriority bool
		status     string
		top        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records by identifier, priority or status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case top:
				r, err := ix.HighestPriority()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			case status != "":
				s, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ix.RecordsByStatus(s))
			case byPriority:
				return printJSON(cmd.OutOrStdout(), ix.AllByPriority())
			default:
				return printJSON(cmd.OutOrStdout(), ix.AllSorted())
			}
		},
	}

	cmd.Flags().BoolVar(&byPriority, "by-priority", false, "order by priority, highest first")
	cmd.Flags().StringVar(&status, "status", "", "only records with this status")
	cmd.Flags().BoolVar(&top, "top", false, "print only the highest-priority record")
	cmd.MarkFlagsMutuallyExclusive("by-priority", "status", "top")
	return cmd
}

func newRelatedCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "related <id>",
		Short: "Print the records most strongly related to a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			if n > 0 {
				return printJSON(cmd.OutOrStdout(), ix.RelatedN(id, n))
			}
			return printJSON(cmd.OutOrStdout(), ix.Related(id))
		},
	}

	cmd.Flags().IntVarP(&n, "limit", "n", 0, "maximum number of results (default from config)")
	return cmd
}

func newEdgesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edges <id>",
		Short: "Print the outgoing relationships of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ix.RelationshipsOf(id))
		},
	}
}

func newMSTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mst",
		Short: "Print the minimum spanning forest of the relationship graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ix.MinimumSpanningForest())
		},
	}
}

func newTraverseCmd(a *app) *cobra.Command {
	var dfs bool

	cmd := &cobra.Command{
		Use:   "traverse <id>",
		Short: "Print the records reachable from a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			mode := reqindex.TraverseBFS
			if dfs {
				mode = reqindex.TraverseDFS
			}
			return printJSON(cmd.OutOrStdout(), ix.Traverse(id, mode))
		},
	}

	cmd.Flags().BoolVar(&dfs, "dfs", false, "depth-first instead of breadth-first")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever the local snapshot changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, a)
		},
	}
}

func runWatch(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	if a.cfg.Source.Kind != config.SourceLocal {
		return errors.New("watch requires a local source")
	}

	reg := prometheus.NewRegistry()
	ix, err := a.openIndex(ctx, reqindex.WithMetricsCollector(promcollector.NewCollector(reg)))
	if err != nil {
		return err
	}

	name, err := a.snapshotName()
	if err != nil {
		return err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	local, ok := store.(interface{ Path(string) string })
	if !ok {
		return errors.New("watch requires a local source")
	}

	w, err := watch.New(local.Path(name), ix,
		watch.WithDebounce(a.cfg.Debounce.Std()),
		watch.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.InfoContext(ctx, "watching snapshot", "path", w.Path(), "records", ix.Statistics().Total)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := w.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if addr := a.cfg.MetricsAddr; addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return gctx },
		}
		g.Go(func() error {
			a.logger.InfoContext(gctx, "serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
