package config

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSM parameter names
const (
	paramForecastTable = "/tempcurve/aws/forecast_table"
	paramBucket        = "/tempcurve/aws/bucket"
	paramPrefix        = "/tempcurve/aws/prefix"
	paramWidth         = "/tempcurve/chart/width"
	paramUnit          = "/tempcurve/chart/unit"
	paramFontPath      = "/tempcurve/chart/font_path"
	paramLogLevel      = "/tempcurve/settings/log_level"
	paramDryRun        = "/tempcurve/settings/dry_run"
)

// SSMAPI is the subset of the SSM client the loader uses.
type SSMAPI interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// SSMConfigLoader handles loading configuration from SSM Parameter Store
type SSMConfigLoader struct {
	client SSMAPI
}

// NewSSMConfigLoader creates a new SSM configuration loader
func NewSSMConfigLoader(ctx context.Context) (*SSMConfigLoader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &SSMConfigLoader{client: ssm.NewFromConfig(cfg)}, nil
}

// NewSSMConfigLoaderWithClient creates a loader on an existing client.
func NewSSMConfigLoaderWithClient(client SSMAPI) *SSMConfigLoader {
	return &SSMConfigLoader{client: client}
}

// LoadConfig loads configuration from SSM Parameter Store
func (s *SSMConfigLoader) LoadConfig(ctx context.Context) (*Config, error) {
	parameterNames := []string{
		paramForecastTable,
		paramBucket,
		paramPrefix,
		paramWidth,
		paramUnit,
		paramFontPath,
		paramLogLevel,
		paramDryRun,
	}

	result, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          parameterNames,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	params := make(map[string]string)
	for _, param := range result.Parameters {
		if param.Name != nil && param.Value != nil {
			params[*param.Name] = *param.Value
		}
	}

	for _, required := range []string{paramForecastTable, paramBucket} {
		if params[required] == "" {
			return nil, &ConfigError{
				Message: "Missing required parameter: " + required,
				Details: result.InvalidParameters,
			}
		}
	}

	config := &Config{
		Chart: ChartConfig{
			Width:    parseFloatWithDefault(params[paramWidth], 0),
			Unit:     params[paramUnit],
			FontPath: params[paramFontPath],
		},
		AWS: AWSConfig{
			ForecastTable: params[paramForecastTable],
			Bucket:        params[paramBucket],
			Prefix:        params[paramPrefix],
		},
		Settings: SettingsConfig{
			AppEnv:   "prod",
			LogLevel: params[paramLogLevel],
			DryRun:   parseBoolWithDefault(params[paramDryRun], false),
		},
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, &ConfigError{Message: err.Error()}
	}
	return config, nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
	Details []string
}

func (e *ConfigError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strconv.Itoa(len(e.Details)) + " invalid parameters"
	}
	return e.Message
}
