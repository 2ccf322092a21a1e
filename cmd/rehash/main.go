// Command rehash replaces every plaintext stored password with its bcrypt hash.
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

	users := repository.NewUserRepository(database.InitCollections(db).Users, cfg.DBTimeout)
	svc := services.NewUserService(users, auth.NewUserChecker(users))

	n, err := svc.RehashPasswords(ctx)
	if err != nil {
		log.Fatal("rehash passwords", zap.Int("updated", n), zap.Error(err))
	}
	log.Info("rehash complete", zap.Int("updated", n))
}
