package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"portfolio/internal/core/model"
	"portfolio/resources"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPortfolio indicates content without an owner or any section.
var ErrEmptyPortfolio = errors.New("portfolio content is empty")

// LoadPortfolio reads portfolio content from path.
// An empty path or a missing file yields the bundled default content.
// On a read or parse failure the bundled default is returned with the error.
func LoadPortfolio(path string) (model.Portfolio, error) {
	fallback, err := DefaultPortfolio()
	if err != nil {
		return model.Portfolio{}, err
	}
	if strings.TrimSpace(path) == "" {
		return fallback, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("read portfolio file: %w", err)
	}

	portfolio, err := ParsePortfolio(rawData)
	if err != nil {
		return fallback, err
	}
	return portfolio, nil
}

// DefaultPortfolio parses the bundled content.
func DefaultPortfolio() (model.Portfolio, error) {
	portfolio, err := ParsePortfolio(resources.DefaultPortfolio())
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("bundled portfolio: %w", err)
	}
	return portfolio, nil
}

// ParsePortfolio decodes portfolio YAML, rejecting unknown fields.
func ParsePortfolio(rawData []byte) (model.Portfolio, error) {
	var portfolio model.Portfolio
	decoder := yaml.NewDecoder(strings.NewReader(string(rawData)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&portfolio); err != nil {
		return model.Portfolio{}, fmt.Errorf("parse portfolio yaml: %w", err)
	}
	if strings.TrimSpace(portfolio.Owner) == "" &&
		len(portfolio.Skills) == 0 && len(portfolio.Projects) == 0 && len(portfolio.Certificates) == 0 {
		return model.Portfolio{}, ErrEmptyPortfolio
	}
	return portfolio, nil
}
