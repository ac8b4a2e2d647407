package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to learndash! Let's configure your dashboard.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validateInt,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (SQLite database)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Session backend.
	backendPrompt := promptui.Select{
		Label: "Where should session state live?",
		Items: []string{
			"sqlite — stored next to the data directory",
			"redis  — shared between dashboard replicas",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("session backend: %w", err)
	}
	if backendIdx == 1 {
		cfg.Session.Backend = BackendRedis
		redisPrompt := promptui.Prompt{
			Label:   "Redis URL",
			Default: "redis://localhost:6379/0",
		}
		if cfg.Session.RedisURL, err = redisPrompt.Run(); err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
	}

	// 4. Simulated delay.
	delayPrompt := promptui.Prompt{
		Label:    "Simulated slow-sum delay (ms)",
		Default:  strconv.Itoa(cfg.Compute.DelayMS),
		Validate: validateInt,
	}
	delayStr, err := delayPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}
	cfg.Compute.DelayMS, _ = strconv.Atoi(delayStr)

	// 5. Accepted uploads.
	acceptPrompt := promptui.Prompt{
		Label:   "Accepted upload patterns (comma-separated globs)",
		Default: strings.Join(DefaultAccept, ","),
	}
	acceptStr, err := acceptPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("upload patterns: %w", err)
	}
	if accept := splitAndTrim(acceptStr); len(accept) > 0 {
		cfg.Upload.Accept = accept
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
