/*
DESCRIPTION
  wallsync synchronizes desktop wallpapers against a library of source
  images: cropping, padding, upscaling and caching per-display artifacts,
  then publishing them through a platform display adapter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the wallsync command-line entry point.
package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/closing"
	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/display"
	"github.com/wallsync/wallsync/pixcache"
	"github.com/wallsync/wallsync/pool"
	"github.com/wallsync/wallsync/resize"
	"github.com/wallsync/wallsync/shuffle"
	"github.com/wallsync/wallsync/stage"
	"github.com/wallsync/wallsync/upscaler"
)

const (
	logPath      = "wallsync.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// app bundles every long-lived collaborator a subcommand might need.
type app struct {
	cfg        *config.Config
	store      config.Store
	log        logging.Logger
	closing    *closing.Flag
	adapter    display.Adapter
	upscaler   upscaler.Upscaler
	resizer    *resize.Auto
	gpu        *resize.GPU
	executor   *stage.Executor
	planner    *build.Planner
	shuffler   shuffle.Shuffler
	optimistic *pixcache.OptimisticCache
}

func newApp(confPath string) (*app, error) {
	cfg, err := config.Load(confPath)
	if err != nil {
		return nil, err
	}

	store, err := config.LoadStore(filepath.Join(cfg.OriginalsDir, config.PropertiesFileName))
	if err != nil {
		return nil, err
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cf := closing.Global()
	closing.Init()

	var up upscaler.Upscaler = upscaler.External{Path: cfg.AlternateUpscaler}

	gpu := resize.NewGPU(cfg.GPUPrefix)
	resizer := resize.NewAuto(gpu)

	adapter := newPlatformAdapter()

	var optimistic *pixcache.OptimisticCache
	if adapter.SupportsInMemory() {
		displays, err := adapter.List()
		if err == nil {
			optimistic = pixcache.NewOptimisticCache(3 * len(displays))
		}
	}

	worker := pool.New(runtime.NumCPU(), cf)
	worker.OnPanic(func(r interface{}) {
		log.Error("worker pool task panicked", "recovered", r)
		cf.Close()
	})
	upscalePool := pool.New(cfg.UpscalingJobs, cf)
	upscalePool.OnPanic(func(r interface{}) {
		log.Error("upscaling pool task panicked", "recovered", r)
		cf.Close()
	})

	executor := &stage.Executor{
		Worker:     worker,
		Upscaling:  upscalePool,
		Upscaler:   up,
		FileCache:  pixcache.NewFileCache(5),
		Optimistic: optimistic,
		Resizer:    resizer,
		Closing:    cf,
	}

	planner := &build.Planner{
		TempDir:         filepath.Join(os.TempDir(), "wallsync"),
		CacheOrTempRoot: cfg.CacheDir,
	}

	return &app{
		cfg:        cfg,
		store:      store,
		log:        log,
		closing:    cf,
		adapter:    adapter,
		upscaler:   up,
		resizer:    resizer,
		gpu:        gpu,
		executor:   executor,
		planner:    planner,
		shuffler:   shuffle.NewSimple(storeKeys(store)),
		optimistic: optimistic,
	}, nil
}

func storeKeys(store config.Store) []string {
	keys := make([]string, 0, len(store))
	for k := range store {
		keys = append(keys, k)
	}
	return keys
}
