// Comando negocio: shell del proceso. Carga configuración, restaura el
// snapshot, cablea el gateway y corre el escaneo de consistencia periódico
// (stock bajo, préstamos vencidos). La capa de presentación embebe el gateway
// directamente; este binario solo mantiene vivo el estado y su persistencia.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/negocio-core/internal/application/gateway"
	"github.com/jhoicas/negocio-core/internal/infrastructure/memory"
	"github.com/jhoicas/negocio-core/internal/infrastructure/snapshot"
	"github.com/jhoicas/negocio-core/pkg/config"
	"github.com/jhoicas/negocio-core/pkg/logger"
	"github.com/jhoicas/negocio-core/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuración inválida: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Msg("arrancando")

	formatter, err := money.NewFormatter(cfg.Money.Locale, cfg.Money.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de moneda inválida")
	}

	st := memory.New()
	snap, err := snapshot.Load(cfg.Snapshot.Path)
	if err != nil {
		// El estado en memoria sigue siendo autoritativo; arrancar vacío y
		// avisar es preferible a morir con un snapshot corrupto.
		log.Error().Err(err).Str("path", cfg.Snapshot.Path).Msg("no se pudo restaurar el snapshot; arrancando vacío")
	} else {
		st.Replace(snap)
	}

	gw := gateway.New(st, log, formatter, nil)

	interval := time.Duration(cfg.Scan.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info().Dur("interval", interval).Msg("escaneo de consistencia programado")

	for {
		select {
		case <-ticker.C:
			res, err := gw.RunConsistencyScan()
			if err != nil {
				log.Error().Err(err).Msg("escaneo de consistencia falló")
				continue
			}
			log.Debug().
				Int("notifications", len(res.Notifications)).
				Str("revenue", res.Dashboard.RevenueDisplay).
				Str("net_profit", res.Dashboard.NetProfitDisplay).
				Msg("escaneo completado")

			// Persistencia fire-and-forget: si falla, el estado en memoria
			// sigue siendo autoritativo y se reintenta en el próximo ciclo.
			if err := snapshot.Save(cfg.Snapshot.Path, gw.CurrentSnapshot()); err != nil {
				log.Error().Err(err).Msg("no se pudo persistir el snapshot")
			}
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("apagando")
			if err := snapshot.Save(cfg.Snapshot.Path, gw.CurrentSnapshot()); err != nil {
				log.Error().Err(err).Msg("no se pudo persistir el snapshot final")
				os.Exit(1)
			}
			return
		}
	}
}
