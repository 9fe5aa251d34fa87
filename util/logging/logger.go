package logging

import (
	"go.uber.org/zap"
)

const (
	FormatProduction  = "production"
	FormatDevelopment = "development"
)

// New builds the application logger. format selects between the json
// production encoder and the console development encoder; an invalid
// level falls back to info.
func New(app, level, format string) (*zap.Logger, error) {
	var config zap.Config
	if format == FormatDevelopment {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = map[string]any{
		"app": app,
	}

	if atom, err := zap.ParseAtomicLevel(level); err == nil {
		config.Level = atom
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return config.Build()
}
