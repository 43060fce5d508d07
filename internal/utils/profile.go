package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/misterclayt0n/tribase/internal/models"
)

func getProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "tribase")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.toml"), nil
}

func SaveProfile(profile *models.Profile) error {
	path, err := getProfilePath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(profile)
}

// LoadProfile returns an empty profile when none was saved yet.
func LoadProfile() (*models.Profile, error) {
	path, err := getProfilePath()
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if !ProfileExists() {
		return &profile, nil
	}
	if _, err := toml.DecodeFile(path, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func ClearProfile() error {
	path, err := getProfilePath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func ProfileExists() bool {
	path, err := getProfilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return !os.IsNotExist(err)
}
