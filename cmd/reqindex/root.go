package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/reqindex"
	"github.com/hupe1980/reqindex/blobstore"
	"github.com/hupe1980/reqindex/blobstore/minio"
	"github.com/hupe1980/reqindex/blobstore/s3"
	"github.com/hupe1980/reqindex/codec"
	"github.com/hupe1980/reqindex/internal/compress"
	"github.com/hupe1980/reqindex/internal/config"
	"github.com/hupe1980/reqindex/source"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type app struct {
	configPath string
	logLevel   string
	trace      bool

	cfg    config.Config
	logger *reqindex.Logger
	tp     *sdktrace.TracerProvider
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "reqindex",
		Short:         "Index and query service request snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.tp != nil {
				return a.tp.Shutdown(cmd.Context())
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false, "print trace spans to stderr")

	root.AddCommand(
		newSeedCmd(a),
		newStatsCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newRelatedCmd(a),
		newEdgesCmd(a),
		newMSTCmd(a),
		newTraverseCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	w := cmd.ErrOrStderr()
	h := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		a.logger = reqindex.NewLogger(slog.NewJSONHandler(w, h))
	} else {
		a.logger = reqindex.NewLogger(slog.NewTextHandler(w, h))
	}

	if a.trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		a.tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	}
	return nil
}

func (a *app) openStore(ctx context.Context) (blobstore.BlobStore, error) {
	sc := a.cfg.Source
	switch sc.Kind {
	case config.SourceLocal:
		return blobstore.NewLocalStore(sc.Path), nil
	case config.SourceS3:
		opts := []s3.Option{s3.WithPrefix(sc.Prefix)}
		if sc.Region != "" {
			opts = append(opts, s3.WithRegion(sc.Region))
		}
		if sc.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(sc.Endpoint))
		}
		if sc.AccessKey != "" {
			opts = append(opts, s3.WithStaticCredentials(sc.AccessKey, sc.SecretKey))
		}
		return s3.New(ctx, sc.Bucket, opts...)
	case config.SourceMinIO:
		return minio.New(sc.Endpoint, sc.Bucket,
			minio.WithPrefix(sc.Prefix),
			minio.WithCredentials(sc.AccessKey, sc.SecretKey),
			minio.WithSecure(sc.Secure),
			minio.WithRegion(sc.Region),
		)
	default:
		return nil, fmt.Errorf("unknown source kind %q", sc.Kind)
	}
}

// snapshotName returns the configured key, extended with the configured
// compression suffix when the key does not already name one.
func (a *app) snapshotName() (string, error) {
	name := a.cfg.Source.Key
	if compress.FromName(name) != compress.None {
		return name, nil
	}
	t, err := compress.ParseType(a.cfg.Source.Compression)
	if err != nil {
		return "", err
	}
	return name + t.Extension(), nil
}

func (a *app) snapshotCodec() codec.Codec {
	if c, ok := codec.ByName(a.cfg.Source.Codec); ok {
		return c
	}
	return codec.Default
}

func (a *app) indexOptions() []reqindex.Option {
	opts := []reqindex.Option{
		reqindex.WithLogger(a.logger),
		reqindex.WithMaxRelated(a.cfg.MaxRelated),
		reqindex.WithWorkers(a.cfg.Workers),
		reqindex.WithMinRebuildInterval(a.cfg.MinRebuildInterval.Std()),
	}
	if a.tp != nil {
		opts = append(opts, reqindex.WithTracerProvider(a.tp))
	}
	return opts
}

func (a *app) openIndex(ctx context.Context, extra ...reqindex.Option) (*reqindex.Index, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	name, err := a.snapshotName()
	if err != nil {
		return nil, err
	}
	src := source.NewSnapshotSource(store, name, source.WithCodec(a.snapshotCodec()))
	return reqindex.New(ctx, src, append(a.indexOptions(), extra...)...)
}

func printJSON(w io.Writer, v any) error {
	data, err := codec.Pretty(codec.Default, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
