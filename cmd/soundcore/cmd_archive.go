package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"soundcore/internal/aoef"
	"soundcore/internal/archive"
	"soundcore/internal/blob"
	"soundcore/internal/catalog"
	"soundcore/internal/metrics"
)

var (
	listKind   string
	listPrefix string
	urlExpiry  time.Duration

	recorderOnce sync.Once
	recorder     *metrics.PrometheusRecorder
)

// archiveRecorder registers the metric families once per process.
func archiveRecorder() *metrics.PrometheusRecorder {
	recorderOnce.Do(func() {
		recorder = metrics.NewPrometheusRecorder(nil)
	})
	return recorder
}

// archiveCmd groups the archive subcommands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store and retrieve exchange documents in the configured archive",
	Long: `Manage the document archive backed by the configured blob store and
catalog. Keys are free-form paths like sets/2024/survey.json.

Available subcommands:
  put    - Archive a local document under a key
  get    - Fetch an archived document to a local file
  ls     - List archived documents
  rm     - Remove an archived document
  url    - Produce a pre-signed download URL (S3 backend only)
  verify - Check an archived document against its catalog entry`,
}

var archivePutCmd = &cobra.Command{
	Use:   "put [file] [key]",
	Short: "Archive a local document under a key",
	Args:  cobra.ExactArgs(2),
	RunE:  runArchivePut,
}

var archiveGetCmd = &cobra.Command{
	Use:   "get [key] [file]",
	Short: "Fetch an archived document to a local file",
	Args:  cobra.ExactArgs(2),
	RunE:  runArchiveGet,
}

var archiveLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List archived documents",
	Args:  cobra.NoArgs,
	RunE:  runArchiveLs,
}

var archiveRmCmd = &cobra.Command{
	Use:   "rm [key]",
	Short: "Remove an archived document",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveRm,
}

var archiveURLCmd = &cobra.Command{
	Use:   "url [key]",
	Short: "Produce a pre-signed download URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveURL,
}

var archiveVerifyCmd = &cobra.Command{
	Use:   "verify [key]",
	Short: "Check an archived document against its catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveVerify,
}

func init() {
	archiveLsCmd.Flags().StringVar(&listKind, "kind", "", "filter by collection_type")
	archiveLsCmd.Flags().StringVar(&listPrefix, "prefix", "", "filter by key prefix")
	archiveURLCmd.Flags().DurationVar(&urlExpiry, "expiry", 15*time.Minute, "how long the URL stays valid")

	archiveCmd.AddCommand(archivePutCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveLsCmd)
	archiveCmd.AddCommand(archiveRmCmd)
	archiveCmd.AddCommand(archiveURLCmd)
	archiveCmd.AddCommand(archiveVerifyCmd)
}

func openBlobStore(ctx context.Context) (blob.Store, error) {
	switch blob.Driver(cfg.Blob.Driver) {
	case blob.DriverFilesystem:
		return blob.NewFilesystem(cfg.Blob.FSRoot)
	case blob.DriverS3:
		return blob.NewS3(ctx, blob.S3Config{
			Bucket:    cfg.Blob.S3.Bucket,
			Region:    cfg.Blob.S3.Region,
			Endpoint:  cfg.Blob.S3.Endpoint,
			PathStyle: cfg.Blob.S3.PathStyle,
		})
	case blob.DriverMemory:
		return blob.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
}

func openCatalogStore(ctx context.Context) (catalog.Store, error) {
	switch catalog.Driver(cfg.Catalog.Driver) {
	case catalog.DriverSQLite:
		return catalog.NewSQLite(ctx, cfg.Catalog.SQLitePath)
	case catalog.DriverPostgres:
		return catalog.NewPostgres(ctx, cfg.Catalog.PostgresDSN)
	case catalog.DriverMemory:
		return catalog.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Catalog.Driver)
	}
}

func openArchive(ctx context.Context) (*archive.Service, func(), error) {
	blobs, err := openBlobStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := openCatalogStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := archive.New(blobs, entries,
		archive.WithLogger(logger),
		archive.WithRecorder(archiveRecorder()),
		archive.WithCodecOptions(aoef.Options{AudioDir: cfg.Codec.AudioDir}),
	)
	cleanup := func() { _ = entries.Close() }
	return svc, cleanup, nil
}

func runArchivePut(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	e, err := svc.Put(ctx, args[1], doc)
	if err != nil {
		return err
	}
	fmt.Printf("archived %s (%s, %d bytes)\n", e.Key, e.Kind, e.SizeBytes)
	return nil
}

func runArchiveGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, e, err := svc.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}
	fmt.Printf("fetched %s (%s, %d bytes) to %s\n", e.Key, e.Kind, e.SizeBytes, args[1])
	return nil
}

func runArchiveLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := svc.List(ctx, catalog.Filter{Kind: listKind, Prefix: listPrefix})
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("%s\t%s\t%d\t%s\t%s\n", e.Key, e.Kind, e.SizeBytes, e.StoredAt.Format(time.RFC3339), name)
	}
	return nil
}

func runArchiveRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := svc.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("key %s is not archived", args[0])
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}

func runArchiveURL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	u, err := svc.PresignURL(ctx, args[0], urlExpiry)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}

func runArchiveVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Verify(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", args[0])
	return nil
}
