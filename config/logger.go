package config

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

// InitLogger sets up the global structured logger. Development output
// unless APP_ENV=production.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}
