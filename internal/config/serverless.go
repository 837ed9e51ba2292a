package config

import (
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda bool
	Region   string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = detectServerless()
	})
	return serverlessConfig
}

func detectServerless() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda: isRunningInLambda(),
		Region:   os.Getenv("AWS_REGION"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment.
// Lambda has no durable local disk, so the store is always DynamoDB there and
// logs go out as JSON for CloudWatch.
func AdaptConfigForServerless(sc *ServerlessConfig, config *Config) *Config {
	if sc == nil || !sc.IsLambda {
		return config
	}

	config.Store.Type = StoreTypeDynamoDB
	config.Log.Format = "json"
	if sc.Region != "" {
		config.Store.Region = sc.Region
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(GetServerlessConfig(), config), nil
}
