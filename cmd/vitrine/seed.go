package main

import (
	"context"
	"fmt"

	"vitrine/internal/db"
	"vitrine/internal/store"
	"vitrine/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Create an admin user",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Admin username",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Admin password (hashed before storage)",
			Required: true,
		},
	},
	Action: seed,
}

func seed(cCtx *cli.Context) error {
	ctx := context.Background()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(cCtx.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &types.AdminUser{
		Username:     cCtx.String("username"),
		PasswordHash: string(hash),
	}

	if err := store.NewAdminRepository(pool).CreateAdmin(ctx, admin); err != nil {
		return err
	}

	logger.WithField("username", admin.Username).Info("admin user created")
	return nil
}
