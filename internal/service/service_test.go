package service

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/worktrack/tracker-backend-go/internal/database"
	"github.com/worktrack/tracker-backend-go/internal/notify"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
)

// recordingNotifier captures alert messages for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) NotifyAdmins(message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

var _ notify.Notifier = (*recordingNotifier)(nil)

type testEnv struct {
	db       *sql.DB
	notifier *recordingNotifier

	locationRepo *repository.LocationRepository
	statusRepo   *repository.StatusRepository
	userRepo     *repository.UserRepository
	timeoffRepo  *repository.TimeoffRepository

	location *LocationService
	status   *StatusService
	reportTo string
	report   *ReportService
	timeoff  *TimeoffService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.ApplySchema(db))

	env := &testEnv{db: db, notifier: &recordingNotifier{}, reportTo: t.TempDir()}
	loc := time.UTC

	env.locationRepo = repository.NewLocationRepository(db, loc)
	env.statusRepo = repository.NewStatusRepository(db, loc)
	env.userRepo = repository.NewUserRepository(db)
	env.timeoffRepo = repository.NewTimeoffRepository(db, loc)

	env.location = NewLocationService(env.locationRepo, env.userRepo, route.DefaultThresholds(), env.notifier, loc, 24)
	env.status = NewStatusService(env.statusRepo, env.location, loc)
	env.report = NewReportService(env.locationRepo, env.statusRepo, env.userRepo, env.timeoffRepo,
		env.location, loc, env.reportTo)
	env.timeoff = NewTimeoffService(env.timeoffRepo, env.userRepo, env.notifier)
	return env
}
