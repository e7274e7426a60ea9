package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/permission"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store/drivers/sqlite"
	"github.com/aussiebroadwan/profilefeed/pkg/cryptox"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type services struct {
	store    store.Store
	accounts *AccountService
	tokens   *TokenService
	profiles *ProfileService
	feed     *FeedService
}

func newServices(t *testing.T) *services {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "service.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &services{
		store:    s,
		accounts: &AccountService{Store: s},
		tokens:   &TokenService{Store: s},
		profiles: &ProfileService{Store: s, Permissions: permission.Evaluator{}},
		feed:     &FeedService{Store: s, Permissions: permission.Evaluator{}},
	}
}

func (s *services) register(t *testing.T, email, name, password string) domain.User {
	t.Helper()
	u, err := s.accounts.CreateAccount(t.Context(), email, name, password)
	require.NoError(t, err)
	return u
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, field)
}

func ptr[T any](v T) *T { return &v }
