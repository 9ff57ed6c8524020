package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"

	"celestix/internal/datastore"
	"celestix/internal/models"
	"celestix/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableSeason(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAchievement(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableWeeklyChallenge(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRewardRule(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRewardIntent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableShopItem(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableEvent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			log.Println("Migration done")
			return nil
		},
	}
}

// commandConfigMigration seeds the tunable defaults so operators can see
// and edit them without consulting the source.
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			defaults := map[string]string{
				services.CONFIG_XP_MESSAGE_MIN:     strconv.Itoa(services.DEFAULT_XP_MESSAGE_MIN),
				services.CONFIG_XP_MESSAGE_MAX:     strconv.Itoa(services.DEFAULT_XP_MESSAGE_MAX),
				services.CONFIG_XP_REACTION:        strconv.Itoa(services.DEFAULT_XP_REACTION),
				services.CONFIG_XP_VOICE_MINUTE:    strconv.Itoa(services.DEFAULT_XP_VOICE_MINUTE),
				services.CONFIG_DAILY_COINS:        strconv.Itoa(services.DEFAULT_DAILY_COINS),
				services.CONFIG_PRESTIGE_CEILING:   strconv.Itoa(services.DEFAULT_PRESTIGE_CEILING),
				services.CONFIG_LEADERBOARD_LIMIT:  strconv.Itoa(services.DEFAULT_LEADERBOARD_LIMIT),
				services.CONFIG_LEADERBOARD_GUILDS: "",

				services.CONFIG_CRONJOB_TIME_SEASON_EXPIRY: "@every 1m",
				services.CONFIG_CRONJOB_TIME_WEEKLY_RESET:  "0 0 * * 1",
				services.CONFIG_CRONJOB_TIME_LEADERBOARD:   "@every 30m",
			}

			for key, value := range defaults {
				err := datastore.UpsertConfig(ctx, db, &models.Config{Key: key, Value: value})
				if err != nil {
					log.Fatal(err)
				}
			}

			log.Println("Config migration done")
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
