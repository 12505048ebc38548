package router

import (
	"database/sql"
	"net/http"

	_ "pet-adoption-hub/docs"

	mem "pet-adoption-hub/internal/adapters/storage/memory"
	pg "pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/domain/divulgations"
	"pet-adoption-hub/internal/domain/donations"
	"pet-adoption-hub/internal/domain/rewards"
	"pet-adoption-hub/internal/domain/volunteers"
	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/metrics"
	"pet-adoption-hub/internal/platform/txn"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/notify"
	"pet-adoption-hub/internal/ports/settings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: fuente del toggle. Default: la del storage elegido.
	Toggle settings.Toggle

	Publisher notify.Publisher
	Logger    logger.Logger

	// Vacío => "*".
	AllowedOrigins []string
}

// App es el servicio armado. Rewards queda expuesto para el job de reset.
type App struct {
	Handler http.Handler
	Rewards *rewards.Service
	Toggle  settings.Toggle
}

type storage struct {
	animals      animals.Repository
	adoptions    adoptions.Repository
	rewards      rewards.Repository
	donations    donations.Repository
	volunteers   volunteers.Repository
	divulgations divulgations.Repository

	adoptionsTx    txn.Manager[adoptions.Tx]
	rewardsTx      txn.Manager[rewards.Store]
	donationsTx    txn.Manager[donations.Tx]
	volunteersTx   txn.Manager[volunteers.Tx]
	divulgationsTx txn.Manager[divulgations.Tx]

	toggle settings.Toggle
}

func memoryStorage() storage {
	s := mem.NewStore()
	return storage{
		animals:        mem.NewAnimalsRepo(s),
		adoptions:      mem.NewAdoptionsRepo(s),
		rewards:        mem.NewRewardsRepo(s),
		donations:      mem.NewDonationsRepo(s),
		volunteers:     mem.NewVolunteersRepo(s),
		divulgations:   mem.NewDivulgationsRepo(s),
		adoptionsTx:    mem.AdoptionsTx(s),
		rewardsTx:      mem.RewardsTx(s),
		donationsTx:    mem.DonationsTx(s),
		volunteersTx:   mem.VolunteersTx(s),
		divulgationsTx: mem.DivulgationsTx(s),
		toggle:         mem.NewToggle(true),
	}
}

func postgresStorage(db *sql.DB) storage {
	s := pg.NewStore(db)
	return storage{
		animals:        pg.NewAnimalsRepo(s),
		adoptions:      pg.NewAdoptionsRepo(s),
		rewards:        pg.NewRewardsRepo(s),
		donations:      pg.NewDonationsRepo(s),
		volunteers:     pg.NewVolunteersRepo(s),
		divulgations:   pg.NewDivulgationsRepo(s),
		adoptionsTx:    pg.AdoptionsTx(s),
		rewardsTx:      pg.RewardsTx(s),
		donationsTx:    pg.DonationsTx(s),
		volunteersTx:   pg.VolunteersTx(s),
		divulgationsTx: pg.DivulgationsTx(s),
		toggle:         pg.NewToggle(s),
	}
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	pub := opts.Publisher
	if pub == nil {
		pub = notify.Nop{}
	}

	var st storage
	if opts.DB != nil {
		st = postgresStorage(opts.DB)
	} else {
		st = memoryStorage()
	}
	toggle := st.toggle
	if opts.Toggle != nil {
		toggle = opts.Toggle
	}

	// Un solo ledger para todas las fuentes de eventos.
	ledger := rewards.NewLedger(toggle, log)

	animalsSvc := animals.NewService(st.animals)
	adoptionsSvc := adoptions.NewService(st.adoptionsTx, st.adoptions, ledger, pub, log)
	rewardsSvc := rewards.NewService(st.rewardsTx, st.rewards, ledger, pub, log)
	donationsSvc := donations.NewService(st.donationsTx, st.donations, ledger, pub, log)
	volunteersSvc := volunteers.NewService(st.volunteersTx, st.volunteers, ledger, pub, log)
	divulgationsSvc := divulgations.NewService(st.divulgationsTx, st.divulgations, ledger, pub, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	rewards.RegisterRoutes(r, rewardsSvc, toggle)
	donations.RegisterRoutes(r, donationsSvc)
	volunteers.RegisterRoutes(r, volunteersSvc)
	divulgations.RegisterRoutes(r, divulgationsSvc)

	return &App{Handler: r, Rewards: rewardsSvc, Toggle: toggle}
}

// NewRouter arma el servicio completo y devuelve solo el handler HTTP.
func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Debug-User-ID", "X-Debug-User-Name"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}
