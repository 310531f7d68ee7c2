//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
)

// InitializeApp assembles the application from the provider set.
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(AppSet)
	return nil, nil, nil
}
