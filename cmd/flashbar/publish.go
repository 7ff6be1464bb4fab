package main

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/flashbar-dev/flashbar/internal/config"
	"github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/assets"
)

func publishCmd() *cobra.Command {
	var (
		configFile string
		bucket     string
		prefix     string
		region     string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the client bundle to an S3 bucket",
		Long: `Upload the embedded client script and stylesheet to an S3 bucket,
for hosts that serve the bundle from a CDN instead of /assets.

Credentials come from the default AWS credential chain (environment,
shared config, instance role).

Examples:
  flashbar publish --bucket=cdn.example.com --prefix=flashbar/v1
  flashbar publish --config=flashbar.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(configFile, bucket, prefix, region, timeout)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFilename, "Configuration file")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (overrides assets.bucket)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Key prefix (overrides assets.prefix)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (overrides assets.region)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Upload timeout")

	return cmd
}

func runPublish(configFile, bucket, prefix, region string, timeout time.Duration) error {
	cfg, err := config.LoadWithFile(configFile)
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = cfg.Assets.Bucket
	}
	if prefix == "" {
		prefix = cfg.Assets.Prefix
	}
	if region == "" {
		region = cfg.Assets.Region
	}
	if bucket == "" {
		return errors.New("F101")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return errors.New("F100").Wrap(err)
	}

	store := assets.NewS3Store(s3.NewFromConfig(awsCfg), bucket, prefix)
	if err := assets.Publish(ctx, store); err != nil {
		return errors.New("F100").WithSubject(bucket).Wrap(err)
	}

	fmt.Printf("\033[32m✓\033[0m published %s and %s to s3://%s/%s\n",
		assets.ScriptName, assets.StyleName, bucket, prefix)
	return nil
}
