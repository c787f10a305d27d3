package roster

import (
	"strconv"
	"testing"
	"time"

	"topsec-backend/internal/database"
	"topsec-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type world struct {
	acme, globex    models.Client
	mainGate, depot models.Post
	doe, idle       models.Guard
}

// seedWorld: у Acme пост Main Gate с J. Doe в дневной смене,
// у Globex пост Depot без охраны, Idle Guard никуда не назначен.
func seedWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()
	w := world{
		acme:   models.Client{Name: "Acme Ltd", ContractStart: time.Now(), ContractEnd: time.Now().AddDate(1, 0, 0)},
		globex: models.Client{Name: "Globex", ContractStart: time.Now(), ContractEnd: time.Now().AddDate(1, 0, 0)},
	}
	require.NoError(t, db.Create(&w.acme).Error)
	require.NoError(t, db.Create(&w.globex).Error)

	w.mainGate = models.Post{Title: "Main Gate", ClientID: w.acme.ID}
	w.depot = models.Post{Title: "Depot", ClientID: w.globex.ID}
	require.NoError(t, db.Create(&w.mainGate).Error)
	require.NoError(t, db.Create(&w.depot).Error)

	w.doe = models.Guard{Name: "J. Doe", IDNumber: "1234567890123456"}
	w.idle = models.Guard{Name: "Idle Guard", IDNumber: "9999999999999999"}
	require.NoError(t, db.Create(&w.doe).Error)
	require.NoError(t, db.Create(&w.idle).Error)

	require.NoError(t, db.Create(&models.Assignment{
		GuardID:    w.doe.ID,
		PostID:     w.mainGate.ID,
		Shift:      models.ShiftDay,
		AssignedAt: time.Now(),
	}).Error)
	return w
}

func TestClientsSummaries(t *testing.T) {
	db := setupTestDB(t)
	seedWorld(t, db)

	r := New(db)
	clients, err := r.Clients()
	require.NoError(t, err)
	require.Len(t, clients, 2)

	byName := map[string]ClientSummary{}
	for _, c := range clients {
		byName[c.Name] = c
	}
	require.Equal(t, 1, byName["Acme Ltd"].PostCount)
	require.Equal(t, 1, byName["Acme Ltd"].GuardCount)
	require.Equal(t, 1, byName["Globex"].PostCount)
	require.Equal(t, 0, byName["Globex"].GuardCount)
}

func TestPostsWithAssignments(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	r := New(db)
	posts, err := r.PostsForClient(w.acme.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Main Gate", posts[0].Title)
	require.Len(t, posts[0].Assignments, 1)
	require.Equal(t, "J. Doe", posts[0].Assignments[0].Guard.Name)
	require.Equal(t, models.ShiftDay, posts[0].Assignments[0].Shift)
}

func TestPostsSearchComposesWithClientFilter(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	r := New(db)

	// поиск без учёта регистра по названию поста
	posts, err := r.Posts(0, "gate")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Main Gate", posts[0].Title)

	// поиск по имени клиента
	posts, err = r.Posts(0, "globex")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Depot", posts[0].Title)

	// фильтры складываются по И: пост есть, но не у этого клиента
	posts, err = r.Posts(w.acme.ID, "depot")
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestGuardsForClient(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	r := New(db)

	// по имени клиента
	guards, err := r.GuardsForClient("Acme Ltd")
	require.NoError(t, err)
	require.Len(t, guards, 1)
	require.Equal(t, "J. Doe", guards[0].Name)

	// и по числовому id
	guards, err = r.GuardsForClient(strconv.Itoa(int(w.acme.ID)))
	require.NoError(t, err)
	require.Len(t, guards, 1)

	guards, err = r.GuardsForClient("Globex")
	require.NoError(t, err)
	require.Empty(t, guards)
}

func TestGuardSearch(t *testing.T) {
	db := setupTestDB(t)
	seedWorld(t, db)

	r := New(db)

	guards, err := r.Guards("", "doe")
	require.NoError(t, err)
	require.Len(t, guards, 1)
	require.Equal(t, "J. Doe", guards[0].Name)

	// по номеру удостоверения
	guards, err = r.Guards("", "9999")
	require.NoError(t, err)
	require.Len(t, guards, 1)
	require.Equal(t, "Idle Guard", guards[0].Name)

	// структурный фильтр и поиск вместе
	guards, err = r.Guards("Acme Ltd", "idle")
	require.NoError(t, err)
	require.Empty(t, guards)
}

func TestUnassignedAndUnmanned(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	r := New(db)

	guards, err := r.UnassignedGuards()
	require.NoError(t, err)
	require.Len(t, guards, 1)
	require.Equal(t, "Idle Guard", guards[0].Name)

	posts, err := r.UnmannedPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Depot", posts[0].Title)
	require.Equal(t, "Globex", posts[0].Client.Name)

	// ночное назначение на Depot закрывает пост и занимает охранника
	require.NoError(t, db.Create(&models.Assignment{
		GuardID:    w.idle.ID,
		PostID:     w.depot.ID,
		Shift:      models.ShiftNight,
		AssignedAt: time.Now(),
	}).Error)

	guards, err = r.UnassignedGuards()
	require.NoError(t, err)
	require.Empty(t, guards)

	posts, err = r.UnmannedPosts()
	require.NoError(t, err)
	require.Empty(t, posts)
}
