package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds all configuration values
type Settings struct {
	// Provider configuration
	Provider string

	// Display settings
	ShowThinking bool

	// System prompt prepended to every conversation. SystemPromptFile, when
	// set, takes precedence over the inline text.
	SystemPrompt     string
	SystemPromptFile string

	// Ollama configuration
	Ollama struct {
		Host         string
		DefaultModel string
		Timeout      int
	}

	// DeepSeek configuration
	DeepSeek struct {
		APIKey      string
		BaseURL     string
		Model       string
		MaxTokens   int
		Temperature float64
		Timeout     int
	}

	// LangChain configuration
	LangChain struct {
		Enabled bool
	}

	// History configuration
	History struct {
		Enabled bool
		File    string
	}

	// Logging configuration
	Logging struct {
		LogFile string
		Persist bool
		Level   string
	}

	// ConfigFile stores the path to the config file used
	ConfigFile string
}

// Global settings instance
var Global *Settings

// Init initializes the configuration system
func Init(cfgFile string) error {
	Global = &Settings{}

	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		Global.ConfigFile = cfgFile
	} else {
		viper.AddConfigPath("./.ooc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
		Global.ConfigFile = ".ooc/settings.yaml"
	}

	// Set all defaults
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()

	// Bind specific environment variables to config keys
	viper.BindEnv("ollama.host", "OLLAMA_HOST")
	viper.BindEnv("ollama.default_model", "OLLAMA_DEFAULT_MODEL")
	viper.BindEnv("deepseek.api_key", "DEEPSEEK_API_KEY")
	viper.BindEnv("deepseek.base_url", "DEEPSEEK_BASE_URL")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Load settings into global struct
	return Load()
}

// setDefaults sets all default configuration values
func setDefaults() {
	// Provider defaults
	viper.SetDefault("provider", "ollama")
	viper.SetDefault("show_thinking", true)
	viper.SetDefault("system_prompt", "")
	viper.SetDefault("system_prompt_file", "")

	// Ollama defaults
	viper.SetDefault("ollama.host", "http://localhost:11434")
	viper.SetDefault("ollama.default_model", "qwen3:latest")
	viper.SetDefault("ollama.timeout", 90)

	// DeepSeek defaults
	viper.SetDefault("deepseek.base_url", "https://api.deepseek.com")
	viper.SetDefault("deepseek.model", "deepseek-chat")
	viper.SetDefault("deepseek.max_tokens", 2048)
	viper.SetDefault("deepseek.temperature", 0.7)
	viper.SetDefault("deepseek.timeout", 120)

	// LangChain defaults
	viper.SetDefault("langchain.enabled", false)

	// History defaults
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.file", "history.json")

	// Logging defaults
	viper.SetDefault("logging.log_file", "system.log")
	viper.SetDefault("logging.persist", false)
	viper.SetDefault("logging.level", "info")
}

// Load loads configuration from viper into the Settings struct
func Load() error {
	// Provider settings
	Global.Provider = viper.GetString("provider")
	Global.ShowThinking = viper.GetBool("show_thinking")
	Global.SystemPrompt = viper.GetString("system_prompt")
	Global.SystemPromptFile = resolvePath(viper.GetString("system_prompt_file"))

	// Ollama settings
	Global.Ollama.Host = viper.GetString("ollama.host")
	Global.Ollama.DefaultModel = viper.GetString("ollama.default_model")
	Global.Ollama.Timeout = viper.GetInt("ollama.timeout")

	// DeepSeek settings
	Global.DeepSeek.APIKey = viper.GetString("deepseek.api_key")
	Global.DeepSeek.BaseURL = viper.GetString("deepseek.base_url")
	Global.DeepSeek.Model = viper.GetString("deepseek.model")
	Global.DeepSeek.MaxTokens = viper.GetInt("deepseek.max_tokens")
	Global.DeepSeek.Temperature = viper.GetFloat64("deepseek.temperature")
	Global.DeepSeek.Timeout = viper.GetInt("deepseek.timeout")

	// LangChain settings
	Global.LangChain.Enabled = viper.GetBool("langchain.enabled")

	// History settings
	Global.History.Enabled = viper.GetBool("history.enabled")
	Global.History.File = resolvePath(viper.GetString("history.file"))

	// Logging settings
	Global.Logging.LogFile = resolvePath(viper.GetString("logging.log_file"))
	Global.Logging.Persist = viper.GetBool("logging.persist")
	Global.Logging.Level = viper.GetString("logging.level")

	return nil
}

// resolvePath anchors relative paths in the settings directory so history
// and log files live next to the config file.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return BuildSettingsPath(path)
}

// settingsDir is the directory holding the active settings file. Tests can
// pin it through the config.path key instead of loading a real file.
func settingsDir() string {
	if override := viper.GetString("config.path"); override != "" {
		return override
	}
	return filepath.Dir(viper.ConfigFileUsed())
}

// BuildSettingsPath joins target onto the settings directory.
func BuildSettingsPath(target string) string {
	return filepath.Join(settingsDir(), target)
}

// WriteDefaultConfig writes default configuration values to disk, preserving existing settings
func WriteDefaultConfig() error {
	if Global.ConfigFile == "" {
		return fmt.Errorf("config file path not set")
	}

	// Ensure config directory exists
	configDir := filepath.Dir(Global.ConfigFile)
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// Write current configuration to file (preserves existing + adds defaults)
	if err := viper.WriteConfigAs(Global.ConfigFile); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	return nil
}

// Get returns the global settings instance
func Get() *Settings {
	if Global == nil {
		panic("config not initialized - call Init() first")
	}
	return Global
}
