package analytics

import (
	"sync"
	"time"

	"github.com/jhoicas/negocio-core/internal/application/dto"
	"github.com/jhoicas/negocio-core/internal/domain/store"
)

const topItemsLimit = 5 // grupos en el ranking del reporte

// UseCase fachada del motor de agregación con memoización. El recálculo
// completo es la semántica de referencia; el memo solo evita repetirlo cuando
// el snapshot no cambió. Clave: (versión del store, ventana, día), porque la
// compuerta de fecha depende del día actual además del contenido.
type UseCase struct {
	store store.Store

	mu   sync.Mutex
	memo map[memoKey]dto.ReportDTO
}

type memoKey struct {
	version uint64
	window  Window
	day     string
}

// NewUseCase construye el caso de uso.
func NewUseCase(s store.Store) *UseCase {
	return &UseCase{store: s, memo: make(map[memoKey]dto.ReportDTO)}
}

// Dashboard KPIs históricos completos (la vista que acompaña a cada evento).
func (uc *UseCase) Dashboard(now time.Time) dto.DashboardDTO {
	return uc.Report(WindowAll, now).DashboardDTO
}

// Report KPIs y ranking de la ventana pedida.
func (uc *UseCase) Report(w Window, now time.Time) dto.ReportDTO {
	key := memoKey{
		version: uc.store.Version(),
		window:  w,
		day:     startOfDay(now).Format("2006-01-02"),
	}

	uc.mu.Lock()
	if cached, ok := uc.memo[key]; ok {
		uc.mu.Unlock()
		return cached
	}
	uc.mu.Unlock()

	snap := uc.store.View()
	report := dto.ReportDTO{
		Window:       w.String(),
		DashboardDTO: Totals(snap, w, now),
		TopItems:     TopItems(snap, w, now, topItemsLimit),
	}

	uc.mu.Lock()
	// El memo crece una entrada por (versión, ventana, día); versiones viejas
	// ya no se consultan, así que se purga todo al cambiar de versión.
	for k := range uc.memo {
		if k.version != key.version {
			delete(uc.memo, k)
		}
	}
	uc.memo[key] = report
	uc.mu.Unlock()

	return report
}
