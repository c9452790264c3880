package cmd

import (
	"github.com/spf13/cobra"
	"path/filepath"
	"s3fetch/internal/models"
	"s3fetch/internal/s3client"
	"s3fetch/pkg/utils"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what download would fetch and where it would write",
	Long: `Validate the configuration and print, for every configured file, the URL
that would be requested and the local file that would be written.
No request is made and nothing is written.`,
	Example: `  # Show the plan for the current project
  s3fetch plan

  # Show the plan for another project root
  s3fetch plan --root ../app`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result := models.PlanResult{
		BucketName: cfg.Bucket,
		RootDir:    cfg.RootDir,
		Items:      make([]models.PlanItem, 0, len(cfg.Files)),
	}
	for _, file := range cfg.Files {
		fullPath := filepath.Join(cfg.RootDir, file.LocalPath)
		result.Items = append(result.Items, models.PlanItem{
			RemoteKey: file.RemoteKey,
			URL:       s3client.ObjectURL(cfg.Bucket, cfg.Region, cfg.APIURL, file.RemoteKey),
			FullPath:  fullPath,
			Exists:    fileExists(fullPath),
		})
	}
	result.TotalFiles = len(result.Items)

	return utils.WriteJSON(cmd.OutOrStdout(), result)
}
