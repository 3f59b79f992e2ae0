package main

import (
	"fmt"
	logger "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/app/bas-simulator/simulator"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/database"
	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "BAS_SIMULATOR : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
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
		Sim struct {
			HttpPort            int     `conf:"default:8080"`
			TickIntervalSeconds int     `conf:"default:3"`
			SpeedMultiplier     float64 `conf:"default:1"`
			StartTime           string  `conf:"help:simulated start time HH:MM:SS or empty for wall clock"`
			Timezone            string  `conf:"default:Asia/Kuala_Lumpur"`
		}
		NATS struct {
			Url             string `conf:"default:"`
			SnapshotSubject string `conf:"default:bas-vehicle-snapshots"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Serve simulated live vehicle positions from a loaded schedule"
	const prefix = "SIMULATOR"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString(prefix, &cfg)
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

	location, err := time.LoadLocation(cfg.Sim.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %s: %w", cfg.Sim.Timezone, err)
	}

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

	log.Println("main: Loading schedule data")
	data, err := sim.Load(db)
	if err != nil {
		return fmt.Errorf("loading schedule data: %w", err)
	}
	log.Printf("main: Loaded data set %s with %d trips", data.DataSet, data.TripCount())

	// =========================================================================
	// Optional NATS connection, snapshots are served over http either way

	var natsConn *nats.Conn
	if cfg.NATS.Url != "" {
		natsConn, err = nats.Connect(cfg.NATS.Url, nats.Name("bas-simulator"))
		if err != nil {
			return fmt.Errorf("connecting to nats at %s: %w", cfg.NATS.Url, err)
		}
		defer natsConn.Close()
	}

	now := time.Now()
	var clock *simulator.Clock
	if cfg.Sim.StartTime == "" {
		clock = simulator.NewWallClock(now, location)
	} else {
		clock = simulator.NewClock(now, simulator.ParseStartSeconds(cfg.Sim.StartTime), cfg.Sim.SpeedMultiplier)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	simulator.StartServices(log, data, clock, location,
		time.Duration(cfg.Sim.TickIntervalSeconds)*time.Second,
		cfg.Sim.HttpPort, natsConn, cfg.NATS.SnapshotSubject, shutdown)
	return nil
}
