package cmd

import (
	"github.com/spf13/cobra"
	"s3fetch/internal/downloader"
	"s3fetch/internal/s3client"
	"s3fetch/pkg/utils"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download every configured file",
	Long: `Download every file listed in AWS_FILES, in order.

Each object is written to <root>/<local path>, replacing any existing file.
A file that cannot be fetched or written is reported and skipped; the
remaining files are still downloaded and the command exits successfully.
A JSON summary of the run is printed to stdout.`,
	Example: `  # Download using BUCKET and AWS_FILES from ./.env
  s3fetch download

  # Download into another project root
  s3fetch download --root ../app

  # Use a different bucket
  s3fetch download --bucket my-other-bucket

  # Fetch through the AWS SDK with ACCESS_KEY and SECRET_KEY
  s3fetch download --source sdk`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	fetcher, err := s3client.New(ctx, cfg, getSource(cmd))
	if err != nil {
		return err
	}

	sugar.Infof("downloading %d files from bucket %s", len(cfg.Files), cfg.Bucket)
	for _, file := range cfg.Files {
		sugar.Debugf("  %s -> %s", file.RemoteKey, file.LocalPath)
	}

	result := downloader.New(fetcher, cfg.Bucket, cfg.RootDir, sugar).Run(ctx, cfg.Files)

	return utils.WriteJSON(cmd.OutOrStdout(), result)
}
