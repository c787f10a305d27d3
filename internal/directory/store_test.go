package directory

import (
	"strings"
	"testing"
	"time"

	"topsec-backend/internal/apperr"
	"topsec-backend/internal/database"
	"topsec-backend/internal/models"
	"topsec-backend/internal/notify"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

func newTestStore(t *testing.T) (*Store, *notify.Recorder, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	rec := &notify.Recorder{}
	return NewStore(db, rec, zap.NewNop()), rec, db
}

func validClient(name string) ClientInput {
	return ClientInput{
		Name:          name,
		Email:         strings.ToLower(name) + "@client.test",
		Location:      "Kigali",
		ContractStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ContractEnd:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateClientValidation(t *testing.T) {
	s, _, db := newTestStore(t)
	var validation *apperr.ValidationError

	_, err := s.CreateClient(ClientInput{Name: "ab"})
	require.ErrorAs(t, err, &validation)

	// дата конца раньше начала — отказ и ничего не сохранено
	in := validClient("Acme Ltd")
	in.ContractStart, in.ContractEnd = in.ContractEnd, in.ContractStart
	_, err = s.CreateClient(in)
	require.ErrorAs(t, err, &validation)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateClientDuplicates(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.CreateClient(validClient("Acme Ltd"))
	require.NoError(t, err)

	var conflict *apperr.ConflictError

	// имя сравнивается без учёта регистра
	in := validClient("ACME LTD")
	in.Email = "other@client.test"
	_, err = s.CreateClient(in)
	require.ErrorAs(t, err, &conflict)

	in = validClient("Globex")
	in.Email = "acme ltd@client.test"
	_, err = s.CreateClient(in)
	require.ErrorAs(t, err, &conflict)
}

func TestCreatePost(t *testing.T) {
	s, _, _ := newTestStore(t)
	client, err := s.CreateClient(validClient("Acme Ltd"))
	require.NoError(t, err)

	var validation *apperr.ValidationError
	_, err = s.CreatePost(PostInput{Title: "   ", ClientID: client.ID})
	require.ErrorAs(t, err, &validation)

	var notFound *apperr.NotFoundError
	_, err = s.CreatePost(PostInput{Title: "Main Gate", ClientID: 9999})
	require.ErrorAs(t, err, &notFound)

	post, err := s.CreatePost(PostInput{Title: "Main Gate", ClientID: client.ID})
	require.NoError(t, err)
	require.Equal(t, client.ID, post.ClientID)
}

func TestCreateGuardIDNumberRules(t *testing.T) {
	s, _, _ := newTestStore(t)
	var validation *apperr.ValidationError

	cases := []string{
		"",                  // пустой
		"12345abc",          // не цифры
		"12345678901234567", // длиннее 16
		"12 3456",           // пробел внутри
	}
	for _, idNumber := range cases {
		_, err := s.CreateGuard(GuardInput{Name: "J. Doe", IDNumber: idNumber})
		require.ErrorAs(t, err, &validation, "idNumber %q", idNumber)
	}

	_, err := s.CreateGuard(GuardInput{Name: "", IDNumber: "123"})
	require.ErrorAs(t, err, &validation)

	guard, err := s.CreateGuard(GuardInput{
		Name:          "J. Doe",
		IDNumber:      "1234567890123456",
		PhoneNumber:   "+250700000001",
		HomeResidence: "Kigali",
	})
	require.NoError(t, err)
	require.Equal(t, "1234567890123456", guard.IDNumber)

	var conflict *apperr.ConflictError
	_, err = s.CreateGuard(GuardInput{Name: "Other", IDNumber: "1234567890123456"})
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateGuard(t *testing.T) {
	s, _, _ := newTestStore(t)

	g1, err := s.CreateGuard(GuardInput{Name: "J. Doe", IDNumber: "1111111111111111"})
	require.NoError(t, err)
	g2, err := s.CreateGuard(GuardInput{Name: "R. Roe", IDNumber: "2222222222222222"})
	require.NoError(t, err)

	updated, err := s.UpdateGuard(g1.ID, GuardInput{
		Name:          "J. Doe Jr.",
		IDNumber:      "1111111111111111",
		PhoneNumber:   "+250700000002",
		HomeResidence: "Musanze",
	})
	require.NoError(t, err)
	require.Equal(t, "J. Doe Jr.", updated.Name)
	require.Equal(t, "Musanze", updated.HomeResidence)

	// чужой номер удостоверения занять нельзя
	var conflict *apperr.ConflictError
	_, err = s.UpdateGuard(g1.ID, GuardInput{Name: "J. Doe", IDNumber: g2.IDNumber})
	require.ErrorAs(t, err, &conflict)

	var notFound *apperr.NotFoundError
	_, err = s.UpdateGuard(9999, GuardInput{Name: "X", IDNumber: "3333333333333333"})
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteClientCascade(t *testing.T) {
	s, rec, db := newTestStore(t)

	client, err := s.CreateClient(validClient("Acme Ltd"))
	require.NoError(t, err)
	post, err := s.CreatePost(PostInput{Title: "Main Gate", ClientID: client.ID})
	require.NoError(t, err)
	guard, err := s.CreateGuard(GuardInput{Name: "J. Doe", IDNumber: "1234567890123456"})
	require.NoError(t, err)

	assignment := models.Assignment{
		GuardID:    guard.ID,
		PostID:     post.ID,
		Shift:      models.ShiftDay,
		AssignedAt: time.Now(),
	}
	require.NoError(t, db.Create(&assignment).Error)

	require.NoError(t, s.DeleteClientCascade(client.ID))

	// пост и назначение ушли вместе с клиентом, охранник остался
	var posts, assignments, guards int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Assignment{}).Count(&assignments).Error)
	require.NoError(t, db.Model(&models.Guard{}).Count(&guards).Error)
	require.Zero(t, posts)
	require.Zero(t, assignments)
	require.Equal(t, int64(1), guards)

	events := rec.Events()
	last := events[len(events)-1]
	require.Equal(t, "client", last.Entity)
	require.Equal(t, "delete", last.Action)

	var notFound *apperr.NotFoundError
	require.ErrorAs(t, s.DeleteClientCascade(client.ID), &notFound)
}

func TestDeleteGuardCascadesAssignments(t *testing.T) {
	s, _, db := newTestStore(t)

	client, err := s.CreateClient(validClient("Acme Ltd"))
	require.NoError(t, err)
	post, err := s.CreatePost(PostInput{Title: "Main Gate", ClientID: client.ID})
	require.NoError(t, err)
	guard, err := s.CreateGuard(GuardInput{Name: "J. Doe", IDNumber: "1234567890123456"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Assignment{
		GuardID:    guard.ID,
		PostID:     post.ID,
		Shift:      models.ShiftNight,
		AssignedAt: time.Now(),
	}).Error)

	require.NoError(t, s.DeleteGuard(guard.ID))

	var assignments int64
	require.NoError(t, db.Model(&models.Assignment{}).Count(&assignments).Error)
	require.Zero(t, assignments)
}
