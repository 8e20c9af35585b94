package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the alarm device listens on a stock install.
const DefaultBaseURL = "http://localhost:8000"

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".jarvis-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jarvis-cli")
	}

	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("timeout", "10s")

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// BaseURL returns the configured device address.
func BaseURL() string {
	return viper.GetString("base_url")
}

// Timeout returns the configured request timeout.
func Timeout() time.Duration {
	return viper.GetDuration("timeout")
}

// SaveServer updates the config file with the device address
func SaveServer(baseURL string) error {
	viper.Set("base_url", baseURL)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".jarvis-cli.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
