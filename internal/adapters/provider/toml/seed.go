package toml

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/cloudnav/accounttree/internal/domain"
)

// Seed writes a signed-in demo state file with freshly minted ids.
// Existing state is left untouched.
func Seed(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("provider state %q already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat provider state: %w", err)
	}

	file := fileSchema{
		Version: currentSchemaVersion,
		Status:  string(domain.StatusLoggedIn),
		Session: sessionSchema{
			TenantID:    uuid.NewString(),
			UserID:      "demo@example.com",
			Environment: "PublicCloud",
		},
	}
	for _, name := range []string{"Sandbox", "Staging", "Production"} {
		file.Filters = append(file.Filters, filterSchema{
			SubscriptionPath: "/subscriptions/" + uuid.NewString(),
			DisplayName:      name,
		})
	}

	return writeState(path, file)
}

// writeState writes the file atomically: temp file in the target
// directory, then rename.
func writeState(path string, file fileSchema) error {
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode provider state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("create provider state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempStatePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Chmod(stateFileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace provider state: %w", err)
	}

	return nil
}
