// Command seed creates the admin user when it is missing.
package main

import (
	"context"

	"simpleshop/auth"
	"simpleshop/config"
	"simpleshop/database"
	"simpleshop/logger"
	"simpleshop/repository"
	"simpleshop/services"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()
	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	cols := database.InitCollections(db)
	if err := database.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}

	users := repository.NewUserRepository(cols.Users, cfg.DBTimeout)
	svc := services.NewUserService(users, auth.NewUserChecker(users))

	created, err := svc.EnsureAdmin(ctx, cfg.SeedAdminPassword)
	if err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}
	if created {
		log.Info("admin user created", zap.String("username", services.AdminUsername))
		return
	}
	log.Info("admin user already exists", zap.String("username", services.AdminUsername))
}
