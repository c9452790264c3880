package cmd

import (
	"context"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"s3fetch/config"
	"s3fetch/internal/logging"
	"s3fetch/internal/s3client"
	"s3fetch/pkg/utils"
	"time"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "s3fetch",
	Short: "Download configured files from an S3 bucket",
	Long: `s3fetch downloads a list of objects from an S3 bucket and writes each one
to a path below the project root, creating directories as needed.

The bucket and the file list are read from the BUCKET and AWS_FILES
environment variables, which may be provided by a .env file in the project
root. AWS_FILES is a JSON array of single-key objects mapping a remote key
to a local path, for example:

  AWS_FILES=[{"cfg/app.json": "config/app.json"}]

Running s3fetch without a command is the same as running "s3fetch download".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runDownload,
}

// Execute runs the command line and reports a failure as a JSON error on
// stderr. The returned error decides the exit status.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		name := rootCmd.Name()
		if cmd != nil {
			name = cmd.Name()
		}
		utils.WriteError(rootCmd.ErrOrStderr(), err, name)
	}
	return err
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().StringP("bucket", "b", "", "Override the BUCKET environment variable")
	rootCmd.PersistentFlags().String("root", "", "Project root that local paths are relative to (default: $ROOT_DIR or the working directory)")
	rootCmd.PersistentFlags().String("env-file", "", "Path of the .env file (default: <root>/.env)")
	rootCmd.PersistentFlags().String("source", s3client.SourcePublic, "How objects are fetched: public (anonymous HTTPS) or sdk (AWS SDK)")
	rootCmd.PersistentFlags().Int("timeout", 0, "Timeout in seconds for the whole operation (0 disables it)")
	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "Log format: console or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func setupLogger(cmd *cobra.Command) error {
	format, _ := cmd.Flags().GetString("log-format")
	l, err := logging.New(format, isVerbose(cmd))
	if err != nil {
		return err
	}
	logger = l
	sugar = l.Sugar()
	return nil
}

// loadConfig builds the run configuration from flags, the .env file and the
// environment. Errors here stop the command before any request is made.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	root, _ := cmd.Flags().GetString("root")
	envFile, _ := cmd.Flags().GetString("env-file")
	bucket, _ := cmd.Flags().GetString("bucket")

	cfg, err := config.Load(config.LoadOptions{
		EnvFile: envFile,
		RootDir: root,
		Bucket:  bucket,
		Logger:  sugar,
	})
	if err != nil {
		return nil, err
	}

	sugar.Infof("using bucket %s", cfg.Bucket)
	sugar.Debugf("root directory: %s", cfg.RootDir)
	return cfg, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	}
	return context.WithCancel(ctx)
}

func getSource(cmd *cobra.Command) string {
	source, _ := cmd.Flags().GetString("source")
	return source
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
