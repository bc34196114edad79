package config

import (
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type runtimeConfig struct {
	MigrationsPath string
}

var Runtime = &runtimeConfig{MigrationsPath: DefaultMigrationsPath}
var Path = "stream-backup.yaml"

// Load reads the configuration at the given path over top of the defaults. A
// default file is written if nothing exists at the path. If the path is a
// directory, every file within it is applied in name order.
func Load(configPath string) (*MainConfig, error) {
	c := NewDefaultMainConfig()

	// Write a default config if the one given doesn't exist
	_, err := os.Stat(configPath)
	exists := err == nil || !os.IsNotExist(err)
	if !exists {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, err
		}

		if err = os.WriteFile(configPath, configBytes, 0644); err != nil {
			return nil, err
		}
	}

	// Get new info about the possible directory after creating
	info, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}

	pathsOrdered := make([]string, 0)
	if info.IsDir() {
		logrus.Info("Config is a directory - loading all files over top of each other")

		files, err := os.ReadDir(configPath)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			pathsOrdered = append(pathsOrdered, path.Join(configPath, f.Name()))
		}

		sort.Strings(pathsOrdered)
	} else {
		pathsOrdered = append(pathsOrdered, configPath)
	}

	for _, p := range pathsOrdered {
		logrus.Debug("Loading config file: ", p)
		buffer, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}

		if err = yaml.Unmarshal(buffer, &c); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", p, err)
		}
	}

	return &c, nil
}
