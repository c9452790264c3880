package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"s3fetch/internal/models"
	"s3fetch/internal/s3client"
	"s3fetch/pkg/utils"
	"time"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every configured file can be fetched",
	Long: `Send a HEAD request for every file listed in AWS_FILES and report its size
and last modification time. Nothing is written to disk.

The command fails if any object is unavailable, which makes it usable as a
pre-flight step before download.`,
	Example: `  # Check the configured files
  s3fetch check

  # Check through the AWS SDK
  s3fetch check --source sdk --verbose`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	result := models.CheckResult{
		BucketName:    cfg.Bucket,
		Region:        cfg.Region,
		Items:         make([]models.CheckItem, 0, len(cfg.Files)),
		OperationTime: utils.FormatTime(time.Now()),
		APIEndpoint:   cfg.APIURL,
	}

	for _, file := range cfg.Files {
		item := models.CheckItem{
			RemoteKey: file.RemoteKey,
			URL:       fetcher.URL(file.RemoteKey),
		}

		info, err := fetcher.Stat(ctx, file.RemoteKey)
		if err != nil {
			sugar.Errorf("%s is not available: %v", file.RemoteKey, err)
			item.HTTPStatus = s3client.HTTPStatus(err)
			item.Error = err.Error()
			result.Missing++
		} else {
			sugar.Debugf("%s is available (%s)", file.RemoteKey, utils.FormatBytes(info.Size))
			item.Available = true
			item.Object = info
			result.Available++
			result.TotalSizeBytes += info.Size
		}
		result.Items = append(result.Items, item)
	}
	result.TotalSizeHuman = utils.FormatBytes(result.TotalSizeBytes)

	if err := utils.WriteJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if result.Missing > 0 {
		return fmt.Errorf("%d of %d files are not available", result.Missing, len(cfg.Files))
	}
	return nil
}
