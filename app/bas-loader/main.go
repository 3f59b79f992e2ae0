package main

import (
	"fmt"
	logger "log"
	"os"
	"strconv"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/app/bas-loader/feedmanager"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/database"
	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "BAS_LOADER : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	_ = godotenv.Load()

	var cfg struct {
		conf.Version
		Args conf.Args
		DB   struct {
			User       string `conf:"default:postgres"`
			Password   string `conf:"default:postgres,noprint"`
			Host       string `conf:"default:0.0.0.0"`
			Name       string `conf:"default:postgres"`
			DisableTLS bool   `conf:"default:true"`
		}
		Feed struct {
			Url           string `conf:"default:https://myrapid.example.com/mybas/kota-bharu/feed.zip"`
			TempDir       string `conf:"default:feed_tmp"`
			ForceDownload bool   `conf:"default:false"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Maintain transit feed instances in database"
	if err := conf.Parse(os.Args[1:], "BAS_LOADER", &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("BAS_LOADER", &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("BAS_LOADER", &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Println(version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", out)

	// =========================================================================
	// Start Database

	log.Println("main: Initializing database support")

	db, err := database.Open(database.Config{
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		Host:       cfg.DB.Host,
		Name:       cfg.DB.Name,
		DisableTLS: cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		log.Printf("main: Database Stopping : %s", cfg.DB.Host)
		err = db.Close()
		if err != nil {
			log.Printf("main: error closing database: %v", err)
		}
	}()

	switch cfg.Args.Num(0) {
	case "load":
		err = feedmanager.UpdateSchedule(log, db, cfg.Feed.TempDir, cfg.Feed.Url, cfg.Feed.ForceDownload)
		if err != nil {
			return err
		}
		return feedmanager.ListSchedules(db)
	case "delete":
		dataSetIdString := cfg.Args.Num(1)
		if len(dataSetIdString) < 1 {
			return fmt.Errorf("expected data set id with command delete")
		}
		dataSetId, err := strconv.ParseInt(dataSetIdString, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to parse data set Id %s, error: %w", dataSetIdString, err)
		}
		return feedmanager.DeleteSchedule(log, db, dataSetId)

	case "list":
		return feedmanager.ListSchedules(db)

	default:
		fmt.Println("load: download and update (if needed) the latest transit feed")
		fmt.Println("delete: remove a feed data set from the database")
		fmt.Println("list: list all feed data sets in the database")
		usage, err := conf.Usage("BAS_LOADER", &cfg)
		if err != nil {
			return fmt.Errorf("generating config usage: %w", err)
		}
		fmt.Println(usage)

	}
	return nil
}
