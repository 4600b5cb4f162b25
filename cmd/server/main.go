package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxelworld/internal/api"
	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/game"
	"github.com/annel0/voxelworld/internal/input"
	"github.com/annel0/voxelworld/internal/inventory"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML-конфигурации (или VOXEL_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("❌ Неверный уровень логирования: %v", err)
	}
	if err := logging.InitDefaultLoggerWithOptions("server", logging.Options{Level: level}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.GetLoggerManager().SetDefaultLevel(level)
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск воксельной симуляции...")
	logging.Info("📡 Конфигурация: chunk=%d render=%d slack=%d terrain=%s tick=%d/s",
		cfg.World.ChunkSize, cfg.World.RenderDistance, cfg.World.RetentionSlack,
		cfg.Terrain.Generator, cfg.Server.TickRate)

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sim, err := game.New(cfg,
		game.WithRegisterer(reg),
		game.WithListener(world.NewLogListener(nil)),
	)
	if err != nil {
		log.Fatalf("❌ Ошибка создания симуляции: %v", err)
	}

	keyboard := input.NewKeyboard()
	store := api.NewSnapshotStore()
	server := api.NewRestServer(api.Config{
		Addr:       fmt.Sprintf(":%d", cfg.Server.GetHTTPPort()),
		Store:      store,
		Controls:   keyboard,
		Registerer: reg,
		Gatherer:   reg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runLoop(gctx, sim, keyboard, store, cfg.Server.TickRate)
	})
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("📡 Завершение работы...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	logging.Info("✅ Симуляция запущена")
	logging.Info("   ❤️  Health check: http://localhost:%d/health", cfg.Server.GetHTTPPort())
	logging.Info("   💡 curl -X POST http://localhost:%d/api/input -d '{\"down\":[\"2\",\"w\"]}'", cfg.Server.GetHTTPPort())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("❌ Ошибка: %v", err)
	}
	logging.Info("👋 Симуляция остановлена")
}

// runLoop один поток симуляции: кадр по тикеру, затем публикация снимка
func runLoop(ctx context.Context, sim *game.Simulation, kb *input.Keyboard, store *api.SnapshotStore, tickRate int) error {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			report, err := sim.Step(kb.Frame(), dt)
			if err != nil {
				if errors.Is(err, inventory.ErrUnknownItem) {
					logging.Warn("Клик отклонен: %v", err)
				} else {
					return err
				}
			}
			if report.Reconcile.Changed() {
				logging.Debug("Стриминг: центр %s, +%d/-%d чанков",
					report.Reconcile.Center, len(report.Reconcile.Loaded), len(report.Reconcile.Unloaded))
			}
			if report.Interaction != nil {
				logging.Debug("Клик: %s", report.Interaction.Outcome)
			}

			store.Publish(sim.Snapshot())
		}
	}
}
