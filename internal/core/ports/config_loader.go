package ports

import "go.trai.ch/delta/internal/core/domain"

// ConfigLoader locates and loads the project configuration, including the
// dependency manifest, and returns it with a validated unit graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (*domain.Project, error)
}
