package main

import (
	"os"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/logger"
	"github.com/marcdejesus/fitness/routes"
	"github.com/marcdejesus/fitness/utils"

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.LoadEnv()
	config.InitDB()
	utils.InitS3()
	utils.InitSES()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
