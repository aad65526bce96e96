package cryptox

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const pepperLength = 32

var (
	pepperMu sync.Mutex
	pepper   string
)

// LoadPepper makes the pepper in file the one mixed into every password
// hash. The file is created with a random pepper on first start. An empty
// path keeps a random pepper in memory only, so hashes do not survive a
// restart.
func LoadPepper(file string) error {
	p, err := loadOrGeneratePepper(file)
	if err != nil {
		return fmt.Errorf("cryptox: load pepper: %w", err)
	}

	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
	return nil
}

// GetPepper returns the loaded pepper, generating an in-memory one when
// LoadPepper was never called.
func GetPepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper == "" {
		p, err := RandomString(pepperLength)
		if err != nil {
			panic(fmt.Sprintf("cryptox: generate pepper: %v", err))
		}
		pepper = p
	}
	return pepper
}

func loadOrGeneratePepper(file string) (string, error) {
	if file == "" {
		return RandomString(pepperLength)
	}

	file = filepath.Clean(file)
	b, err := os.ReadFile(file)
	switch {
	case err == nil:
		if len(b) == 0 {
			return "", fmt.Errorf("%s is empty", file)
		}
		return string(b), nil
	case !os.IsNotExist(err):
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}
	p, err := RandomString(pepperLength)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(file, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
